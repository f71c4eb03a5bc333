package model

import "hotelier/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldRoomNumber    = "room_number"
	FieldType          = "type"
	FieldPricePerNight = "price_per_night"
	FieldIsAvailable   = "is_available"
)

type RoomType string

const (
	TypeStandard RoomType = "standard"
	TypeDeluxe   RoomType = "deluxe"
	TypeSuite    RoomType = "suite"
)

// Description returns the human readable label shown to guests.
func (t RoomType) Description() string {
	switch t {
	case TypeStandard:
		return "Standard Room"
	case TypeDeluxe:
		return "Deluxe Room"
	case TypeSuite:
		return "Suite"
	default:
		return string(t)
	}
}

func (t RoomType) Valid() bool {
	switch t {
	case TypeStandard, TypeDeluxe, TypeSuite:
		return true
	default:
		return false
	}
}

type Room struct {
	RoomNumber    int      `db:"room_number"`
	Type          RoomType `db:"type"`
	PricePerNight float64  `db:"price_per_night"`
	IsAvailable   bool     `db:"is_available"`
	model.Metadata
}

// DefaultCatalog returns the fixed set of rooms the hotel opens with:
// 25 standard rooms (100-124), 15 deluxe rooms (200-214) and
// 10 suites (300-309).
func DefaultCatalog() []Room {
	blocks := []struct {
		first, count int
		roomType     RoomType
		price        float64
	}{
		{100, 25, TypeStandard, 50},
		{200, 15, TypeDeluxe, 75},
		{300, 10, TypeSuite, 100},
	}

	var rooms []Room
	for _, b := range blocks {
		for i := 0; i < b.count; i++ {
			rooms = append(rooms, Room{
				RoomNumber:    b.first + i,
				Type:          b.roomType,
				PricePerNight: b.price,
				IsAvailable:   true,
			})
		}
	}

	return rooms
}
