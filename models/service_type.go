package models

import "strings"

// ServiceType is one of the fixed categories the business offers
type ServiceType string

const (
	ServiceCourseProject ServiceType = "course-project"
	ServiceSeniorProject ServiceType = "senior-project"
	ServiceConsulting    ServiceType = "consulting"
	ServiceSupervision   ServiceType = "supervision" // senior project follow-up
	Service3DModeling    ServiceType = "3d-modeling"
	Service3DPrinting    ServiceType = "3d-printing"
	ServiceHomework      ServiceType = "homework"
)

// ServiceTypes lists every service type in form order
var ServiceTypes = []ServiceType{
	ServiceCourseProject,
	ServiceSeniorProject,
	ServiceConsulting,
	ServiceSupervision,
	Service3DModeling,
	Service3DPrinting,
	ServiceHomework,
}

// Valid reports whether s is a known service type
func (s ServiceType) Valid() bool {
	for _, st := range ServiceTypes {
		if s == st {
			return true
		}
	}
	return false
}

// ParseServiceType normalizes and validates a service type string
func ParseServiceType(value string) (ServiceType, bool) {
	st := ServiceType(strings.ToLower(strings.TrimSpace(value)))
	return st, st.Valid()
}

// OrderStatus tracks an order through fulfilment
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInProgress OrderStatus = "in-progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}
