package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sikado/tutoring-service/internal/events"
	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/validator"
)

// Response messages for the two success variants of SendRequest. The second
// one is still a success: the request row exists, only the notification
// didn't go out.
const (
	msgRequestSent  = "Contact request sent successfully"
	msgNotifyFailed = "Request saved but notification failed to send"
)

// Notifier delivers a contact-request notification to the teacher. One
// best-effort call, no retry.
type Notifier interface {
	NotifyContactRequest(ctx context.Context, notification *events.ContactRequestNotification) error
}

// eventNotifier publishes notifications onto the event transport, where the
// downstream mailer picks them up.
type eventNotifier struct {
	publisher events.EventPublisher
}

func NewEventNotifier(publisher events.EventPublisher) Notifier {
	return &eventNotifier{publisher: publisher}
}

func (n *eventNotifier) NotifyContactRequest(ctx context.Context, notification *events.ContactRequestNotification) error {
	event := events.NewEvent(events.EventContactRequestCreated, notification)
	return n.publisher.Publish(ctx, event)
}

type contactService struct {
	repo          repositories.Repository
	logger        *slog.Logger
	validator     *validator.Validator
	notifier      Notifier
	notifyTimeout time.Duration
}

func NewContactService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	notifier Notifier,
	notifyTimeout time.Duration,
) ContactService {
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &contactService{
		repo:          repo,
		logger:        logger,
		validator:     validator,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
	}
}

func (s *contactService) SendRequest(ctx context.Context, studentID uint, req *SendContactRequest) (*SendContactResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	s.logger.Info("Creating contact request", "student_id", studentID, "teacher_id", req.TeacherID)

	// Teacher lookup and the insert below are not atomic. With no delete
	// path in this service the window is benign.
	teacher, err := s.repo.User().GetByID(ctx, req.TeacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("%w: failed to load teacher: %v", ErrStoreUnavailable, err)
	}
	if teacher.Role != models.RoleTeacher {
		return nil, ErrTeacherNotFound
	}

	request := &models.ContactRequest{
		StudentID:    studentID,
		TeacherID:    teacher.ID,
		StudentName:  req.StudentName,
		Requirements: req.Requirements,
		Availability: req.Availability,
		Note:         req.Note,
		Status:       models.RequestPending,
	}

	if err := s.repo.ContactRequest().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("%w: failed to save request: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Contact request created", "request_id", request.ID)

	// The request is durable at this point. Notification is best effort and
	// bounded: a slow transport must not hold up the response, and a failed
	// one must never surface as an error to the student.
	notified := s.notify(request, teacher)

	response := &SendContactResponse{
		Request:  request,
		Notified: notified,
		Message:  msgRequestSent,
	}
	if !notified {
		response.Message = msgNotifyFailed
	}

	return response, nil
}

func (s *contactService) notify(request *models.ContactRequest, teacher *models.User) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	notification := &events.ContactRequestNotification{
		RequestID:    request.ID,
		TeacherEmail: teacher.Email,
		TeacherName:  teacher.Name,
		StudentName:  request.StudentName,
		Requirements: request.Requirements,
		Availability: request.Availability,
		Note:         request.Note,
	}

	// The notifier may sit on a stalled transport that ignores the context,
	// so the deadline is enforced here rather than trusted to the callee.
	done := make(chan error, 1)
	go func() {
		done <- s.notifier.NotifyContactRequest(ctx, notification)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Warn("Failed to notify teacher",
				"request_id", request.ID,
				"teacher_id", teacher.ID,
				"error", err)
			return false
		}
		return true
	case <-ctx.Done():
		s.logger.Warn("Notification timed out",
			"request_id", request.ID,
			"teacher_id", teacher.ID,
			"timeout", s.notifyTimeout)
		return false
	}
}

func (s *contactService) ListForTeacher(ctx context.Context, teacherID uint) ([]*models.ContactRequest, error) {
	requests, err := s.repo.ContactRequest().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list requests: %v", ErrStoreUnavailable, err)
	}
	return requests, nil
}

func (s *contactService) ExportForTeacher(ctx context.Context, teacherID uint) (*excelize.File, error) {
	requests, err := s.ListForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := "Requests"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to build export: %w", err)
	}

	headers := []string{"Student", "Requirements", "Availability", "Note", "Status", "Received"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to build export: %w", err)
		}
	}

	for row, request := range requests {
		note := ""
		if request.Note != nil {
			note = *request.Note
		}
		values := []interface{}{
			request.StudentName,
			request.Requirements,
			request.Availability,
			note,
			string(request.Status),
			request.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to build export: %w", err)
			}
		}
	}

	return file, nil
}
