package entity

import (
	"slices"
	"time"
)

type ServiceType string

const (
	ServiceInstallation ServiceType = "Installation"
	ServiceRepair       ServiceType = "Repair"
	ServicePolish       ServiceType = "Polish"
	ServiceInspection   ServiceType = "Inspection"
)

var ServiceTypes = []ServiceType{ServiceInstallation, ServiceRepair, ServicePolish, ServiceInspection}

func (s ServiceType) Valid() bool { return slices.Contains(ServiceTypes, s) }

type FlooringType string

const (
	FlooringHomogeneous   FlooringType = "Homogeneous"
	FlooringHeterogeneous FlooringType = "Heterogeneous"
	FlooringSPC           FlooringType = "SPC"
	FlooringVinyl         FlooringType = "Vinyl"
	FlooringCarpet        FlooringType = "Carpet"
	FlooringWooden        FlooringType = "Wooden"
)

var FlooringTypes = []FlooringType{
	FlooringHomogeneous, FlooringHeterogeneous, FlooringSPC,
	FlooringVinyl, FlooringCarpet, FlooringWooden,
}

func (f FlooringType) Valid() bool { return slices.Contains(FlooringTypes, f) }

type PreferredTime string

const (
	TimeMorning   PreferredTime = "Morning 8-12"
	TimeAfternoon PreferredTime = "Afternoon 12-4"
	TimeEvening   PreferredTime = "Evening 4-8"
)

var PreferredTimes = []PreferredTime{TimeMorning, TimeAfternoon, TimeEvening}

func (p PreferredTime) Valid() bool { return slices.Contains(PreferredTimes, p) }

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool { return s == StatusPending || s == StatusCompleted }

type Booking struct {
	ID            int64
	UserID        int64
	FullName      string
	Email         string
	Phone         string
	Address       string
	AreaSize      float64
	ServiceType   ServiceType
	FlooringType  FlooringType
	PreferredDate string
	PreferredTime PreferredTime
	Notes         string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListFilter selects bookings for the admin list. Empty Status matches all;
// Search is a case-insensitive substring over phone, email and full name.
type ListFilter struct {
	Status Status
	Search string
	Limit  int
	Offset int
}
