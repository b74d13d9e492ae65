package get_resource_schedule

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(resourceID int64, weekdayStr string) (*models.GetScheduleRequest, error) {
	req := &models.GetScheduleRequest{ResourceID: resourceID}

	if weekdayStr != "" {
		wd, err := strconv.Atoi(weekdayStr)
		if err != nil || wd < 0 || wd > 6 {
			return nil, fmt.Errorf("invalid weekday %q", weekdayStr)
		}
		weekday := time.Weekday(wd)
		req.Weekday = &weekday
	}

	return req, nil
}
