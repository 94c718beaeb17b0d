package setting

type Setting struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

func (Setting) TableName() string {
	return "settings"
}
