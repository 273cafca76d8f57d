package model

// MaxIngredientNameLength bounds ingredient names and measurement units.
const MaxIngredientNameLength = 200

// Ingredient is a single component used by recipes, with its unit of measure.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
