package catalog

import "github.com/google/uuid"

// ---------- BUILDINGS ----------

type BuildingRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Location string `json:"location" validate:"max=255"`
}

// ---------- ROOMS ----------

type RoomRequest struct {
	BuildingID string `json:"building_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,notblank,max=255"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
}

type RoomInput struct {
	BuildingID uuid.UUID
	Name       string
	Capacity   int
}

func (r RoomRequest) Input() RoomInput {
	return RoomInput{
		BuildingID: uuid.MustParse(r.BuildingID),
		Name:       r.Name,
		Capacity:   r.Capacity,
	}
}
