package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWorkScheduleTotalHours(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		breakMins int
		want      float64
		wantErr   bool
	}{
		{
			name:  "full day no break",
			start: "09:00",
			end:   "17:00",
			want:  8,
		},
		{
			name:      "full day with lunch",
			start:     "09:00",
			end:       "17:30",
			breakMins: 30,
			want:      8,
		},
		{
			name:  "half hour shift",
			start: "10:00",
			end:   "10:30",
			want:  0.5,
		},
		{
			name:    "invalid start time",
			start:   "9am",
			end:     "17:00",
			wantErr: true,
		},
		{
			name:    "invalid end time",
			start:   "09:00",
			end:     "25:99",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := WorkSchedule{
				StartTime:            tt.start,
				EndTime:              tt.end,
				BreakDurationMinutes: tt.breakMins,
			}
			hours, err := schedule.TotalHours()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, hours, 0.001)
		})
	}
}

func TestTimesheetTotalHours(t *testing.T) {
	timesheet := Timesheet{
		HoursWorked:   decimal.RequireFromString("8.00"),
		OvertimeHours: decimal.RequireFromString("1.50"),
	}
	assert.Equal(t, "9.50", timesheet.TotalHours().StringFixed(2))
}

func TestEmployeeProfileFullName(t *testing.T) {
	employee := EmployeeProfile{FirstName: "Mari", LastName: "Tamm"}
	assert.Equal(t, "Mari Tamm", employee.FullName())
}
