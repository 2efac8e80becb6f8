package domain

import "time"

// AssetType is a lookup row classifying the vehicle being serviced.
type AssetType struct {
	ID   int64  `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// ServiceCenter is a physical location where appointments take place.
type ServiceCenter struct {
	ID      int64  `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
}

// ServiceAppointment books an asset into a service center at a given time.
type ServiceAppointment struct {
	ID              int64     `json:"id" bson:"_id"`
	AssetTypeID     int64     `json:"asset_type_id" bson:"asset_type_id"`
	ServiceCenterID int64     `json:"service_center_id" bson:"service_center_id"`
	AppointmentDate time.Time `json:"appointment_date" bson:"appointment_date"`
	AssetMake       string    `json:"asset_make,omitempty" bson:"asset_make,omitempty"`
	AssetYear       int       `json:"asset_year,omitempty" bson:"asset_year,omitempty"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
