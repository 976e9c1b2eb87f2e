package main

import (
	"francheasy/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.FrancheasyModel{},
		model.StoreModel{},
		model.PovilionModel{},
		model.BusinessModel{},
		model.BusinessRequestModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
