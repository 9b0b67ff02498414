package order

// Factory creates orders of one kind. A delivery factory stamps its
// address on every order it creates.
type Factory struct {
	Kind            Kind
	DeliveryAddress string
}

func DineInFactory() Factory   { return Factory{Kind: KindDineIn} }
func TakeawayFactory() Factory { return Factory{Kind: KindTakeaway} }

func DeliveryFactory(address string) Factory {
	return Factory{Kind: KindDelivery, DeliveryAddress: address}
}

// Create builds a pending order with the given id and customer.
func (f Factory) Create(id int, customer string) (*Order, error) {
	return New(f.Kind, id, customer, f.DeliveryAddress)
}
