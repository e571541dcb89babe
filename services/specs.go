package services

import (
	"encoding/json"
	"fmt"
)

// Category identifies a product category. Every category-dependent lookup in
// this package switches exhaustively over these values so that adding a new
// category fails loudly instead of silently falling through.
type Category string

const (
	CategoryCamera    Category = "camera"
	CategoryRecorder  Category = "recorder"
	CategoryStorage   Category = "storage"
	CategoryCable     Category = "cable"
	CategoryConnector Category = "connector"
	CategoryPower     Category = "power"
	CategorySwitch    Category = "switch"
	CategoryAccessory Category = "accessory"
)

// AllCategories lists every category in catalog display order.
func AllCategories() []Category {
	return []Category{
		CategoryCamera,
		CategoryRecorder,
		CategoryStorage,
		CategoryCable,
		CategoryConnector,
		CategoryPower,
		CategorySwitch,
		CategoryAccessory,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable name shown in quotes and catalog listings.
func (c Category) Label() string {
	switch c {
	case CategoryCamera:
		return "Cameras"
	case CategoryRecorder:
		return "Recorders (DVR/NVR)"
	case CategoryStorage:
		return "Storage"
	case CategoryCable:
		return "Cables"
	case CategoryConnector:
		return "Connectors"
	case CategoryPower:
		return "Power Supplies"
	case CategorySwitch:
		return "Network Switches"
	case CategoryAccessory:
		return "Accessories"
	}
	return string(c)
}

// Icon returns the icon key the admin UI uses for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryCamera:
		return "videocam"
	case CategoryRecorder:
		return "dvr"
	case CategoryStorage:
		return "hard-drive"
	case CategoryCable:
		return "cable"
	case CategoryConnector:
		return "plug"
	case CategoryPower:
		return "bolt"
	case CategorySwitch:
		return "lan"
	case CategoryAccessory:
		return "widgets"
	}
	return "box"
}

// CameraSpecs describes camera products.
type CameraSpecs struct {
	Resolution string  `json:"resolution"`
	LensMM     float64 `json:"lens_mm"`
	BodyType   string  `json:"body_type"`
	NightIR    bool    `json:"night_ir"`
	Audio      bool    `json:"audio"`
}

// RecorderSpecs describes DVR/NVR products.
type RecorderSpecs struct {
	Channels     int  `json:"channels"`
	MaxStorageTB int  `json:"max_storage_tb"`
	PoEPorts     int  `json:"poe_ports"`
	HybridMode   bool `json:"hybrid_mode"`
}

// StorageSpecs describes surveillance drives.
type StorageSpecs struct {
	CapacityTB        float64 `json:"capacity_tb"`
	FormFactor        string  `json:"form_factor"`
	SurveillanceRated bool    `json:"surveillance_rated"`
}

// CableSpecs describes coax/network cable rolls.
type CableSpecs struct {
	CableType string  `json:"cable_type"`
	LengthM   float64 `json:"length_m"`
}

// ConnectorSpecs describes BNC/RJ45 style connectors.
type ConnectorSpecs struct {
	ConnectorType string `json:"connector_type"`
	PackSize      int    `json:"pack_size"`
}

// PowerSpecs describes SMPS/power supplies.
type PowerSpecs struct {
	OutputAmps float64 `json:"output_amps"`
	Channels   int     `json:"channels"`
}

// SwitchSpecs describes network switches.
type SwitchSpecs struct {
	Ports int  `json:"ports"`
	PoE   bool `json:"poe"`
}

// AccessorySpecs describes the catch-all accessory category.
type AccessorySpecs struct {
	Kind string `json:"kind"`
}

// ProductSpecs is the tagged per-category specification variant. Exactly one
// of the pointer fields matching Category is set on a valid value.
type ProductSpecs struct {
	Category  Category        `json:"category"`
	Camera    *CameraSpecs    `json:"camera,omitempty"`
	Recorder  *RecorderSpecs  `json:"recorder,omitempty"`
	Storage   *StorageSpecs   `json:"storage,omitempty"`
	Cable     *CableSpecs     `json:"cable,omitempty"`
	Connector *ConnectorSpecs `json:"connector,omitempty"`
	Power     *PowerSpecs     `json:"power,omitempty"`
	Switch    *SwitchSpecs    `json:"switch,omitempty"`
	Accessory *AccessorySpecs `json:"accessory,omitempty"`
}

// Validate checks that the variant matching Category is populated and that
// its fields make sense.
func (s ProductSpecs) Validate() error {
	switch s.Category {
	case CategoryCamera:
		if s.Camera == nil {
			return fmt.Errorf("specs: camera variant missing")
		}
		if s.Camera.Resolution == "" {
			return fmt.Errorf("specs: camera resolution is required")
		}
	case CategoryRecorder:
		if s.Recorder == nil {
			return fmt.Errorf("specs: recorder variant missing")
		}
		if s.Recorder.Channels <= 0 {
			return fmt.Errorf("specs: recorder channel count must be positive")
		}
	case CategoryStorage:
		if s.Storage == nil {
			return fmt.Errorf("specs: storage variant missing")
		}
		if s.Storage.CapacityTB <= 0 {
			return fmt.Errorf("specs: storage capacity must be positive")
		}
	case CategoryCable:
		if s.Cable == nil {
			return fmt.Errorf("specs: cable variant missing")
		}
		if s.Cable.LengthM <= 0 {
			return fmt.Errorf("specs: cable length must be positive")
		}
	case CategoryConnector:
		if s.Connector == nil {
			return fmt.Errorf("specs: connector variant missing")
		}
		if s.Connector.ConnectorType == "" {
			return fmt.Errorf("specs: connector type is required")
		}
	case CategoryPower:
		if s.Power == nil {
			return fmt.Errorf("specs: power variant missing")
		}
		if s.Power.OutputAmps <= 0 {
			return fmt.Errorf("specs: power output must be positive")
		}
	case CategorySwitch:
		if s.Switch == nil {
			return fmt.Errorf("specs: switch variant missing")
		}
		if s.Switch.Ports <= 0 {
			return fmt.Errorf("specs: switch port count must be positive")
		}
	case CategoryAccessory:
		if s.Accessory == nil {
			return fmt.Errorf("specs: accessory variant missing")
		}
	default:
		return fmt.Errorf("specs: unknown category %q", s.Category)
	}
	return nil
}

// ParseSpecs decodes a raw JSON specs blob for the given category and
// validates the result.
func ParseSpecs(category Category, raw []byte) (ProductSpecs, error) {
	specs := ProductSpecs{Category: category}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &specs); err != nil {
			return ProductSpecs{}, fmt.Errorf("specs: decode: %w", err)
		}
		specs.Category = category
	}
	if err := specs.Validate(); err != nil {
		return ProductSpecs{}, err
	}
	return specs, nil
}
