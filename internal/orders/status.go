package orders

type Status string

const (
	// StatusCreated is reserved for a two-step placement flow; orders are
	// currently written directly as placed.
	StatusCreated   Status = "created"
	StatusPlaced    Status = "placed"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusCreated:   {StatusPlaced: true, StatusCancelled: true},
	StatusPlaced:    {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
