package export

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/schedulease/pkg/model"
)

// ScheduleRow is one scheduled section of one schedule.
type ScheduleRow struct {
	ScheduleID  int    `csv:"schedule_id"`
	CourseCode  string `csv:"course_code"`
	Role        string `csv:"role"`
	CRN         string `csv:"crn"`
	Section     string `csv:"section"`
	Days        string `csv:"days"`
	Start       string `csv:"start"`
	End         string `csv:"end"`
	Location    string `csv:"location"`
	Instructors string `csv:"instructors"`
}

func ScheduleRows(schedules []model.Schedule) []*ScheduleRow {
	rows := []*ScheduleRow{}
	for _, schedule := range schedules {
		for _, course := range schedule.Courses {
			for _, section := range course.Sections() {
				days := strings.Join(section.Meeting.Days, "")
				if days == "" {
					days = "TBA"
				}
				rows = append(rows, &ScheduleRow{
					ScheduleID:  schedule.ID,
					CourseCode:  course.CourseCode,
					Role:        string(section.Role),
					CRN:         section.CRN,
					Section:     section.Section,
					Days:        days,
					Start:       section.Meeting.StartDisplay(),
					End:         section.Meeting.EndDisplay(),
					Location:    section.Location,
					Instructors: strings.Join(section.Instructors, "; "),
				})
			}
		}
	}
	return rows
}

// WriteCSV writes the rows of every schedule, header included.
func WriteCSV(out io.Writer, schedules []model.Schedule) error {
	rows := ScheduleRows(schedules)
	return gocsv.Marshal(&rows, out)
}

func CSVString(schedules []model.Schedule) (string, error) {
	rows := ScheduleRows(schedules)
	return gocsv.MarshalString(&rows)
}
