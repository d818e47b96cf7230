package calendar_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/services/calendar_service"
	"github.com/joy095/propertyops/utils/response"
)

type CalendarController struct {
	Calendar *calendar_service.CalendarService
}

func NewCalendarController(calendar *calendar_service.CalendarService) *CalendarController {
	return &CalendarController{Calendar: calendar}
}

// firstQuery returns the first non-empty query value among names.
func firstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := c.Query(name); v != "" {
			return v
		}
	}
	return ""
}

// GetEvents handles GET /calendar?start=&end=. startDate and endDate are
// accepted as aliases.
func (cc *CalendarController) GetEvents(c *gin.Context) {
	clock := cc.Calendar.Clock()
	start, err := clock.ParseDate(firstQuery(c, "start", "startDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := clock.ParseDate(firstQuery(c, "end", "endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	events, err := cc.Calendar.GetEvents(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}
