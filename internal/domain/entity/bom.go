package entity

// Bom es la lista de materiales de un producto (1:1, el producto es el dueño).
type Bom struct {
	ID        string
	ProductID string
	Name      string
	Materials []*BomMaterial
}

// BomMaterial es una línea del BOM: qué material y en qué cantidad.
// Dentro de un BOM hay a lo sumo una línea por material: el número de
// material es la clave de reconciliación.
type BomMaterial struct {
	ID              string
	BomID           string
	MaterialNumber  string
	Quantity        int // se espera > 0
	UnitMeasureCode string
}
