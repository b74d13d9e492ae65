package get_resource_appointments

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, startDate/endDate - период; вместе их передавать нельзя
func ToServiceRequest(resourceID, userID int64, query url.Values) (*models.GetResourceAppointmentsRequest, error) {
	req := &models.GetResourceAppointmentsRequest{
		UserID:     userID,
		ResourceID: resourceID,
	}

	dateStr := query.Get("date")
	startStr := query.Get("startDate")
	endStr := query.Get("endDate")

	if dateStr != "" && (startStr != "" || endStr != "") {
		return nil, errors.New("date cannot be combined with startDate/endDate")
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}

	if endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &end
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
