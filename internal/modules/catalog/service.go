package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roombooking/internal/domain"
	"roombooking/internal/repository"
)

// Service manages buildings and rooms. Every mutation runs in one
// transaction and re-checks uniqueness and references inside it.
type Service struct {
	store *repository.Store
	log   *zap.Logger
}

func NewService(store *repository.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

/* ---------- BUILDINGS ---------- */

func (s *Service) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	return s.store.Buildings.List(ctx)
}

func (s *Service) GetBuilding(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	b, err := s.store.Buildings.GetByID(ctx, id)
	if err != nil {
		return nil, buildingErr(err)
	}
	return b, nil
}

func (s *Service) CreateBuilding(ctx context.Context, req BuildingRequest) (*domain.Building, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBlankName
	}

	b := &domain.Building{Name: name, Location: strings.TrimSpace(req.Location)}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		taken, err := tx.Buildings.NameTaken(ctx, name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateBuildingName
		}
		if err := tx.Buildings.Create(ctx, b); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateBuildingName
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("building created", zap.String("building_id", b.ID.String()), zap.String("name", b.Name))
	return b, nil
}

// UpdateBuilding overwrites name and location. Keeping the current name is
// not a duplicate.
func (s *Service) UpdateBuilding(ctx context.Context, id uuid.UUID, req BuildingRequest) (*domain.Building, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBlankName
	}

	var out *domain.Building
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		b, err := tx.Buildings.LockByID(ctx, id)
		if err != nil {
			return buildingErr(err)
		}
		taken, err := tx.Buildings.NameTaken(ctx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateBuildingName
		}

		b.Name = name
		b.Location = strings.TrimSpace(req.Location)
		b.UpdatedAt = time.Now().UTC()
		if err := tx.Buildings.Update(ctx, b); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateBuildingName
			}
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBuilding removes an empty building and returns it.
func (s *Service) DeleteBuilding(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	var out *domain.Building
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		b, err := tx.Buildings.LockByID(ctx, id)
		if err != nil {
			return buildingErr(err)
		}
		n, err := tx.Rooms.CountByBuilding(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBuildingHasRooms
		}
		if err := tx.Buildings.Delete(ctx, id); err != nil {
			if repository.IsForeignKeyViolation(err) {
				return ErrBuildingHasRooms
			}
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("building deleted", zap.String("building_id", out.ID.String()))
	return out, nil
}

/* ---------- ROOMS ---------- */

// ListRooms returns all rooms, or the rooms of buildingID when it is set.
func (s *Service) ListRooms(ctx context.Context, buildingID uuid.UUID) ([]domain.Room, error) {
	return s.store.Rooms.List(ctx, buildingID)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	r, err := s.store.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, roomErr(err)
	}
	return r, nil
}

func (s *Service) CreateRoom(ctx context.Context, in RoomInput) (*domain.Room, error) {
	in, err := normalizeRoom(in)
	if err != nil {
		return nil, err
	}

	room := &domain.Room{BuildingID: in.BuildingID, Name: in.Name, Capacity: in.Capacity}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkRoomPlacement(ctx, tx, in, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Rooms.Create(ctx, room); err != nil {
			return roomWriteErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("room created",
		zap.String("room_id", room.ID.String()),
		zap.String("building_id", room.BuildingID.String()),
	)
	return room, nil
}

// UpdateRoom overwrites building, name and capacity. A room may move to
// another building as long as the name stays unique there.
func (s *Service) UpdateRoom(ctx context.Context, id uuid.UUID, in RoomInput) (*domain.Room, error) {
	in, err := normalizeRoom(in)
	if err != nil {
		return nil, err
	}

	var out *domain.Room
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		room, err := tx.Rooms.LockByID(ctx, id)
		if err != nil {
			return roomErr(err)
		}
		if err := checkRoomPlacement(ctx, tx, in, id); err != nil {
			return err
		}

		room.BuildingID = in.BuildingID
		room.Name = in.Name
		room.Capacity = in.Capacity
		room.UpdatedAt = time.Now().UTC()
		if err := tx.Rooms.Update(ctx, room); err != nil {
			return roomWriteErr(err)
		}
		out = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRoom removes a room without bookings and returns it.
func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	var out *domain.Room
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		room, err := tx.Rooms.LockByID(ctx, id)
		if err != nil {
			return roomErr(err)
		}
		n, err := tx.Bookings.CountByRoom(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrRoomHasBookings
		}
		if err := tx.Rooms.Delete(ctx, id); err != nil {
			if repository.IsForeignKeyViolation(err) {
				return ErrRoomHasBookings
			}
			return err
		}
		out = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("room deleted", zap.String("room_id", out.ID.String()))
	return out, nil
}

func normalizeRoom(in RoomInput) (RoomInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrBlankName
	}
	if in.Capacity <= 0 {
		return in, ErrInvalidCapacity
	}
	return in, nil
}

func checkRoomPlacement(ctx context.Context, tx *repository.Store, in RoomInput, exclude uuid.UUID) error {
	if _, err := tx.Buildings.GetByID(ctx, in.BuildingID); err != nil {
		return buildingErr(err)
	}
	taken, err := tx.Rooms.NameTaken(ctx, in.BuildingID, in.Name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateRoomName
	}
	return nil
}

func buildingErr(err error) error {
	if repository.IsNotFound(err) {
		return ErrBuildingNotFound
	}
	return err
}

func roomErr(err error) error {
	if repository.IsNotFound(err) {
		return ErrRoomNotFound
	}
	return err
}

func roomWriteErr(err error) error {
	switch {
	case repository.IsUniqueViolation(err):
		return ErrDuplicateRoomName
	case repository.IsForeignKeyViolation(err):
		return ErrBuildingNotFound
	default:
		return err
	}
}
