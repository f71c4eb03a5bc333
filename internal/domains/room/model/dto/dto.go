package dto

import (
	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
)

type RoomResponse struct {
	RoomNumber    int     `json:"room_number"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"price_per_night"`
	IsAvailable   bool    `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.RoomNumber = model.RoomNumber
	r.Type = string(model.Type)
	r.Description = model.Type.Description()
	r.PricePerNight = model.PricePerNight
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type InitializeCatalogResponse struct {
	RoomsCreated int `json:"rooms_created"`
}
