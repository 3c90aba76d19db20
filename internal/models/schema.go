package models

// Column names for the products table.
const (
	ProductTable = "products"

	ColumnID           = "id"
	ColumnName         = "name"
	ColumnPrice        = "price"
	ColumnAvailability = "availability"
	ColumnCreatedAt    = "created_at"
	ColumnUpdatedAt    = "updated_at"
)

// FieldType is the semantic type of a column as exposed over the API.
type FieldType string

const (
	FieldInteger   FieldType = "integer"
	FieldString    FieldType = "string"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldTimestamp FieldType = "timestamp"
)

// Field describes one column of an entity.
type Field struct {
	Column      string
	JSON        string
	Type        FieldType
	Nullable    bool
	Size        int
	Default     any
	Generated   bool
	Internal    bool // bookkeeping column, stripped from list projections
	Description string
	Example     any
}

// Schema is an explicit, ordered description of an entity's columns.
type Schema struct {
	Table  string
	Fields []Field
}

// Field returns the field stored in the given column.
func (s Schema) Field(column string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Column == column {
			return f, true
		}
	}
	return Field{}, false
}

// PublicColumns lists the columns that are not internal, in schema order.
func (s Schema) PublicColumns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Internal {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// ProductSchema is the column layout of the products table.
var ProductSchema = Schema{
	Table: ProductTable,
	Fields: []Field{
		{
			Column:      ColumnID,
			JSON:        "id",
			Type:        FieldInteger,
			Generated:   true,
			Description: "The product ID",
			Example:     1,
		},
		{
			Column:      ColumnName,
			JSON:        "name",
			Type:        FieldString,
			Size:        100,
			Description: "The product name",
			Example:     "Monitor curvo de 49''",
		},
		{
			Column:      ColumnPrice,
			JSON:        "price",
			Type:        FieldNumber,
			Description: "The product price",
			Example:     300,
		},
		{
			Column:      ColumnAvailability,
			JSON:        "availability",
			Type:        FieldBoolean,
			Nullable:    true,
			Default:     true,
			Description: "The product availability",
			Example:     true,
		},
		{
			Column:    ColumnCreatedAt,
			JSON:      "createdAt",
			Type:      FieldTimestamp,
			Generated: true,
			Internal:  true,
		},
		{
			Column:    ColumnUpdatedAt,
			JSON:      "updatedAt",
			Type:      FieldTimestamp,
			Generated: true,
			Internal:  true,
		},
	},
}
