package services

import (
	"errors"
	"fmt"
	"log"

	"learnhub/config"
	courseModels "learnhub/models/course"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollResult is what Enroll hands back: either the created enrollment
// (free course) or a payment reference for the checkout collaborator.
type EnrollResult struct {
	Enrollment       *courseModels.Enrollment `json:"enrollment,omitempty"`
	PaymentRequired  bool                     `json:"payment_required"`
	PaymentReference string                   `json:"payment_reference,omitempty"`
}

// EnrollmentService manages the enrollment lifecycle. It is the trigger
// point for the rest of the engine: a new enrollment seeds the progress
// snapshot, and a confirmed payment is the only path to premium on a paid
// course.
type EnrollmentService struct {
	db       *gorm.DB
	progress *ProgressService
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{
		db:       db,
		progress: NewProgressService(db),
	}
}

// Enroll enrolls the learner in a free course immediately, with Premium set
// (vacuously) true. For a paid course no enrollment is created; the caller
// gets a payment reference to start checkout with, and access is only
// granted once ConfirmPremiumEnrollment fires.
func (s *EnrollmentService) Enroll(userID, courseID uint) (EnrollResult, error) {
	crs, err := s.loadCourse(courseID)
	if err != nil {
		return EnrollResult{}, err
	}

	var existing courseModels.Enrollment
	err = s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return EnrollResult{}, fmt.Errorf("already enrolled in course %d: %w", courseID, ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EnrollResult{}, err
	}

	if !crs.IsFree() {
		return EnrollResult{
			PaymentRequired:  true,
			PaymentReference: uuid.NewString(),
		}, nil
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Premium:  true,
		Status:   courseModels.EnrollmentEnrolled,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return EnrollResult{}, fmt.Errorf("create enrollment: %w", err)
	}

	s.seedSnapshot(userID, courseID)

	return EnrollResult{Enrollment: &enrollment}, nil
}

// ConfirmPremiumEnrollment handles the payment collaborator's confirmation
// for a paid course: it verifies the payment when a gateway is configured,
// then creates the enrollment with Premium true (or upgrades an existing
// one). This is the only way a paid course's enrollment becomes premium.
func (s *EnrollmentService) ConfirmPremiumEnrollment(userID, courseID uint, amount uint, reference string) (*courseModels.Enrollment, error) {
	crs, err := s.loadCourse(courseID)
	if err != nil {
		return nil, err
	}

	if amount < crs.Price {
		return nil, fmt.Errorf("paid %d of %d for course %d: %w", amount, crs.Price, courseID, ErrValidation)
	}

	if err := s.verifyPayment(reference, amount); err != nil {
		return nil, err
	}

	var enrollment courseModels.Enrollment
	err = s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	switch {
	case err == nil:
		if !enrollment.Premium {
			enrollment.Premium = true
			if err := s.db.Save(&enrollment).Error; err != nil {
				return nil, fmt.Errorf("upgrade enrollment: %w", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		enrollment = courseModels.Enrollment{
			UserID:   userID,
			CourseID: courseID,
			Premium:  true,
			Status:   courseModels.EnrollmentEnrolled,
		}
		if err := s.db.Create(&enrollment).Error; err != nil {
			return nil, fmt.Errorf("create premium enrollment: %w", err)
		}
	default:
		return nil, err
	}

	s.seedSnapshot(userID, courseID)

	return &enrollment, nil
}

// Withdraw removes the enrollment row. Completion ledger rows and the
// snapshot stay: re-enrolling resumes prior progress, and the snapshot is
// re-persisted from the ledger on the next write or read.
func (s *EnrollmentService) Withdraw(userID, courseID uint) error {
	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no enrollment for course %d: %w", courseID, ErrNotFound)
		}
		return err
	}

	// Hard delete so the unique (user, course) index does not block a later
	// re-enrollment.
	if err := s.db.Unscoped().Delete(&enrollment).Error; err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

// ListEnrollments returns the learner's enrollments, newest first.
func (s *EnrollmentService) ListEnrollments(userID uint, offset, limit int) ([]courseModels.Enrollment, int64, error) {
	db := s.db.Model(&courseModels.Enrollment{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

func (s *EnrollmentService) loadCourse(courseID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, err
	}
	return &crs, nil
}

// seedSnapshot persists an initial snapshot so list views have a row to read.
// Recomputed from the ledger, so a re-enrolling learner sees their preserved
// progress rather than a hard zero.
func (s *EnrollmentService) seedSnapshot(userID, courseID uint) {
	if _, err := s.progress.ComputeCourseProgress(userID, courseID); err != nil {
		log.Printf("[PROGRESS] initial snapshot failed for user=%d course=%d: %v", userID, courseID, err)
	}
}

// verifyPayment double-checks the confirmation against the payment gateway.
// Skipped when no gateway is configured (local development and tests).
func (s *EnrollmentService) verifyPayment(reference string, amount uint) error {
	if config.AppConfig == nil || config.AppConfig.PaymentApiURL == "" {
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetBody(map[string]interface{}{
			"reference": reference,
			"amount":    amount,
		}).
		Post(config.AppConfig.PaymentApiURL + "/verify")
	if err != nil {
		return fmt.Errorf("payment verification call: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("[PAYMENT] verification rejected for reference=%s: %d %s", reference, resp.StatusCode(), resp.String())
		return fmt.Errorf("payment reference %s not verified: %w", reference, ErrValidation)
	}
	return nil
}
