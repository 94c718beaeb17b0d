package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRestOpenAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest OpenAPI Suite")
}

// api/openapi.yml is served verbatim at /openapi.yml, so it has to stay a
// valid OpenAPI 3 document that actually describes the routes we register.
var _ = Describe("OpenAPI Document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("validates against the OpenAPI 3 schema", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents every registered API route", func() {
		for _, path := range []string{
			"/login",
			"/logout",
			"/validate",
			"/teams",
			"/teams/{id}",
			"/users",
			"/users/{id}",
			"/users/{username}/password",
			"/settings",
			"/settings/{key}",
			"/employees",
			"/employees/{emp_id}",
			"/employees/check/{emp_id}",
			"/shifts",
			"/shifts/{id}",
			"/roster",
			"/roster/export",
			"/roster/employee",
			"/roster/{emp_id}/{date}",
			"/stats",
			"/health",
			"/ping",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("keeps the roster export response as a CSV attachment", func() {
		item := doc.Paths.Find("/roster/export")
		Expect(item).NotTo(BeNil())
		op := item.Get
		Expect(op).NotTo(BeNil())
		resp := op.Responses.Status(200)
		Expect(resp).NotTo(BeNil())
		Expect(resp.Value.Content).To(HaveKey("text/csv"))
	})
})
