package models

// Migratable lists every gorm model owned by the relational store.
func Migratable() []any {
	return []any{
		&Industry{},
		&User{},
		&Company{},
		&Job{},
		&Application{},
		&Skill{},
		&UserSkill{},
		&CV{},
		&SiteStat{},
	}
}
