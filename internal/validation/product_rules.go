package validation

// Messages reported by the product rules.
const (
	MsgInvalidID           = "ID no valido"
	MsgEmptyName           = "El Nombre de producto no puede ir vacío"
	MsgInvalidValue        = "Valor no valido"
	MsgEmptyPrice          = "El Precio de producto no puede ir vacío"
	MsgInvalidPrice        = "Precio no valido"
	MsgInvalidAvailability = "Valor para disponibilidad no valido"
	MsgInvalidBody         = "El cuerpo de la petición no es JSON valido"
)

var (
	idRule = Rule{Location: LocationParams, Field: "id", Tag: "integer", Message: MsgInvalidID}

	nameRules = Chain{
		{Location: LocationBody, Field: "name", Tag: "required", Message: MsgEmptyName},
	}

	priceRules = Chain{
		{Location: LocationBody, Field: "price", Tag: "numeric", Message: MsgInvalidValue},
		{Location: LocationBody, Field: "price", Tag: "required", Message: MsgEmptyPrice},
		{Location: LocationBody, Field: "price", Tag: "positive", Message: MsgInvalidPrice},
	}

	availabilityRule = Rule{Location: LocationBody, Field: "availability", Tag: "boolstring", Message: MsgInvalidAvailability}
)

// ProductIDRules validates the path id of get, patch and delete.
func ProductIDRules() Chain {
	return Chain{idRule}
}

// CreateProductRules validates the body of a create request.
func CreateProductRules() Chain {
	chain := Chain{}
	chain = append(chain, nameRules...)
	return append(chain, priceRules...)
}

// UpdateProductRules validates the path id and the full body of an update.
func UpdateProductRules() Chain {
	chain := Chain{idRule}
	chain = append(chain, nameRules...)
	chain = append(chain, priceRules...)
	return append(chain, availabilityRule)
}

// NeedsBody reports whether any rule of the chain reads the request body.
func (c Chain) NeedsBody() bool {
	for _, r := range c {
		if r.Location == LocationBody {
			return true
		}
	}
	return false
}
