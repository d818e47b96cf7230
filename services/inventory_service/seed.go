package inventory_service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Inventory is the seed file layout:
//
//	roomTypes:
//	  - name: Deluxe
//	    basePrice: "150.00"
//	    capacity: 2
//	    rooms: ["101", "102"]
type Inventory struct {
	RoomTypes []InventoryRoomType `yaml:"roomTypes"`
}

type InventoryRoomType struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	BasePrice   string   `yaml:"basePrice"`
	Capacity    int      `yaml:"capacity"`
	Rooms       []string `yaml:"rooms"`
}

// SeedResult counts what a seed run created.
type SeedResult struct {
	RoomTypes int `json:"roomTypes"`
	Rooms     int `json:"rooms"`
}

func ReadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	return ParseInventory(data)
}

func ParseInventory(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("%w: inventory yaml: %v", utils.ErrInvalidInput, err)
	}
	return &inv, nil
}

// LoadInventory reads path and seeds it.
func (s *InventoryService) LoadInventory(ctx context.Context, path string) (SeedResult, error) {
	inv, err := ReadInventory(path)
	if err != nil {
		return SeedResult{}, err
	}
	return s.Seed(ctx, inv)
}

// Seed creates the room types and rooms of inv that do not exist yet. Room
// types match by name, rooms by number, so running it twice is a no-op.
func (s *InventoryService) Seed(ctx context.Context, inv *Inventory) (SeedResult, error) {
	var res SeedResult

	existingTypes, err := s.store.ListRoomTypes(ctx)
	if err != nil {
		return res, err
	}
	typeByName := make(map[string]room_models.RoomType, len(existingTypes))
	for _, rt := range existingTypes {
		typeByName[strings.ToLower(rt.Name)] = rt
	}

	existingRooms, err := s.store.ListRooms(ctx, room_models.RoomFilter{})
	if err != nil {
		return res, err
	}
	roomNumbers := make(map[string]bool, len(existingRooms))
	for _, r := range existingRooms {
		roomNumbers[strings.ToLower(r.Number)] = true
	}

	for _, entry := range inv.RoomTypes {
		rt, ok := typeByName[strings.ToLower(strings.TrimSpace(entry.Name))]
		if !ok {
			price, err := decimal.NewFromString(strings.TrimSpace(entry.BasePrice))
			if err != nil {
				return res, fmt.Errorf("%w: room type %q has invalid basePrice %q", utils.ErrInvalidInput, entry.Name, entry.BasePrice)
			}
			created, err := s.CreateRoomType(ctx, entry.Name, entry.Description, price, entry.Capacity)
			if err != nil {
				return res, fmt.Errorf("seeding room type %q: %w", entry.Name, err)
			}
			rt = *created
			typeByName[strings.ToLower(rt.Name)] = rt
			res.RoomTypes++
		}

		for _, number := range entry.Rooms {
			key := strings.ToLower(strings.TrimSpace(number))
			if roomNumbers[key] {
				continue
			}
			if _, err := s.CreateRoom(ctx, number, rt.ID); err != nil {
				return res, fmt.Errorf("seeding room %q: %w", number, err)
			}
			roomNumbers[key] = true
			res.Rooms++
		}
	}

	logger.InfoLogger.Infof("Inventory seeded: %d room types, %d rooms created", res.RoomTypes, res.Rooms)
	return res, nil
}
