package po

// SequencePO One row per collection holding the last id handed out
type SequencePO struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null"`
}

func (SequencePO) TableName() string {
	return "sequences"
}

// All returns every persistence object, for AutoMigrate.
func All() []any {
	return []any{
		&CategoryPO{},
		&TagPO{},
		&ProductPO{},
		&OrderPO{},
		&OrderLineItemPO{},
		&PaymentPO{},
		&SequencePO{},
	}
}
