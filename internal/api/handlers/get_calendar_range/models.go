package get_calendar_range

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/VTC-PlanningService/internal/domain"
	planningModels "github.com/m04kA/VTC-PlanningService/internal/service/planning/models"
)

const monthFormat = "2006-01"

// parseRangeQuery разбирает параметры периода календаря
// Поддерживаются три формы:
//   - startDate=YYYY-MM-DD&endDate=YYYY-MM-DD - явный период
//   - week=YYYY-MM-DD - неделя (пн-вс), содержащая указанную дату
//   - month=YYYY-MM - календарный месяц
//
// Без параметров период остаётся нулевым: сервис подставит текущую неделю
func parseRangeQuery(query url.Values, driverID int64) (*planningModels.GetCalendarRequest, error) {
	req := &planningModels.GetCalendarRequest{DriverID: driverID}

	if week := query.Get("week"); week != "" {
		anchor, err := time.Parse(domain.DateFormat, week)
		if err != nil {
			return nil, fmt.Errorf("invalid week parameter: %w", err)
		}
		req.Start, req.End = domain.WeekBounds(anchor)
		return req, nil
	}

	if month := query.Get("month"); month != "" {
		anchor, err := time.Parse(monthFormat, month)
		if err != nil {
			return nil, fmt.Errorf("invalid month parameter: %w", err)
		}
		req.Start, req.End = domain.MonthBounds(anchor)
		return req, nil
	}

	if startDate := query.Get("startDate"); startDate != "" {
		start, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate parameter: %w", err)
		}
		req.Start = start
	}

	if endDate := query.Get("endDate"); endDate != "" {
		end, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate parameter: %w", err)
		}
		req.End = end
	}

	return req, nil
}
