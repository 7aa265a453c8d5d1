package trade

// Recorder receives business counter updates from the order engines.
// Increments happen after the enclosing transaction commits.
type Recorder interface {
	OrderDelivered(kind string)
	StockMovement(direction string, units int64)
}

// Order kinds and movement directions reported to the Recorder
const (
	KindSupplier = "supplier"
	KindClient   = "client"

	MovementIn  = "in"
	MovementOut = "out"
)

type nopRecorder struct{}

func (nopRecorder) OrderDelivered(string) {}

func (nopRecorder) StockMovement(string, int64) {}

// NopRecorder discards every update
var NopRecorder Recorder = nopRecorder{}

func orderedUnits(lines []OrderedItemResponse) int64 {
	var units int64
	for _, line := range lines {
		units += line.OrderedQuantity
	}
	return units
}
