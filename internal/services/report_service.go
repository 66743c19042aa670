package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// ReportService renders store contents into downloadable documents. No
// business logic beyond formatting and labeling.
type ReportService interface {
	TasksReportXLSX(ctx context.Context) (*bytes.Buffer, error)
	TasksReportPDF(ctx context.Context) (*bytes.Buffer, error)
	UsersReportXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type reportService struct {
	tasks repositories.TaskRepository
	users repositories.UserRepository
}

func NewReportService(tasks repositories.TaskRepository, users repositories.UserRepository) ReportService {
	return &reportService{tasks: tasks, users: users}
}

type taskReportRow struct {
	ID          int64
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     string
	AssignedTo  string
}

func (s *reportService) taskRows(ctx context.Context) ([]taskReportRow, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]taskReportRow, 0, len(tasks))
	for _, t := range tasks {
		refs, err := s.users.GetRefs(ctx, t.AssignedTo)
		if err != nil {
			return nil, err
		}
		assigned := "Unassigned"
		if len(refs) > 0 {
			parts := make([]string, 0, len(refs))
			for _, ref := range refs {
				parts = append(parts, fmt.Sprintf("%s (%s)", ref.Name, ref.Email))
			}
			assigned = strings.Join(parts, ", ")
		}
		rows = append(rows, taskReportRow{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    string(t.Priority),
			Status:      string(t.Status),
			DueDate:     t.DueDate.Format("2006-01-02"),
			AssignedTo:  assigned,
		})
	}
	return rows, nil
}

var taskReportHeaders = []string{"Task ID", "Title", "Description", "Priority", "Status", "Due Date", "Assigned To"}
var taskReportWidths = []float64{10, 30, 50, 15, 15, 20, 30}

func (s *reportService) TasksReportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.taskRows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Tasks Report"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeaderRow(f, sheet, taskReportHeaders, taskReportWidths); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{row.ID, row.Title, row.Description, row.Priority, row.Status, row.DueDate, row.AssignedTo}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

var userReportHeaders = []string{"User Name", "Email", "Total Assigned Tasks", "Pending Tasks", "In Progress Tasks", "Completed Tasks"}
var userReportWidths = []float64{30, 40, 22, 20, 22, 20}

type userReportRow struct {
	Name            string
	Email           string
	TaskCount       int
	PendingTasks    int
	InProgressTasks int
	CompletedTasks  int
}

func (s *reportService) UsersReportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}

	// fold tasks over their assignees
	byUser := make(map[int64]*userReportRow, len(users))
	order := make([]int64, 0, len(users))
	for _, u := range users {
		byUser[u.ID] = &userReportRow{Name: u.Name, Email: u.Email}
		order = append(order, u.ID)
	}
	for _, t := range tasks {
		for _, id := range t.AssignedTo {
			row, ok := byUser[id]
			if !ok {
				continue
			}
			row.TaskCount++
			switch t.Status {
			case models.StatusPending:
				row.PendingTasks++
			case models.StatusInProgress:
				row.InProgressTasks++
			case models.StatusCompleted:
				row.CompletedTasks++
			}
		}
	}

	f := excelize.NewFile()
	const sheet = "User Task Report"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeaderRow(f, sheet, userReportHeaders, userReportWidths); err != nil {
		return nil, err
	}
	for i, id := range order {
		row := byUser[id]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{row.Name, row.Email, row.TaskCount, row.PendingTasks, row.InProgressTasks, row.CompletedTasks}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, widths []float64) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return err
		}
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}
