package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/export"
	"github.com/dmitrijs2005/sharkbite/internal/goals"
	"github.com/dmitrijs2005/sharkbite/internal/ledger"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/quests"
	"github.com/dmitrijs2005/sharkbite/internal/registry"
	"github.com/dmitrijs2005/sharkbite/internal/session"
)

// ErrNoSink is returned by exports when no sink is configured.
var ErrNoSink = errors.New("export sink is not configured")

// ClassroomService is everything a logged-in user can do.
type ClassroomService interface {
	// teacher only
	Roster(ctx context.Context) ([]export.RosterRow, error)
	AssignQuest(ctx context.Context, student, quest string) (*models.UserRecord, error)
	AssignSubjects(ctx context.Context, student string, subjects []string) (*models.UserRecord, error)
	AddSubject(ctx context.Context, student, subject string) (*models.UserRecord, error)
	CreateGoal(ctx context.Context, student string, in models.NewGoal) (models.Goal, error)
	PendingReviews(ctx context.Context) (iter.Seq[goals.Submission], error)
	ApproveGoal(ctx context.Context, student, goalID string) (models.Goal, error)
	RejectGoal(ctx context.Context, student, goalID string) (models.Goal, error)
	ExportRegistry(ctx context.Context) ([]string, error)

	// student only
	SelectSubject(ctx context.Context, subject string) (*models.UserRecord, error)
	AvailableQuests(ctx context.Context) ([]quests.Quest, error)
	CompleteQuest(ctx context.Context, questID, answer string) (*models.UserRecord, error)
	CompleteTypingQuest(ctx context.Context, typed string, elapsedSeconds float64) (*models.UserRecord, error)
	MyGoals(ctx context.Context) ([]models.Goal, error)
	SubmitGoal(ctx context.Context, goalID string) (models.Goal, error)

	// any role
	Progress(ctx context.Context) (string, error)
	ExportSelf(ctx context.Context) (string, error)
}

// Deps wires a ClassroomService. Sink may be nil, in which case exports fail
// with ErrNoSink.
type Deps struct {
	Registry *registry.Registry
	Session  *session.Session
	Goals    *goals.Engine
	Ledger   *ledger.Ledger
	Sink     export.Sink
	Policy   models.ActiveSubjectPolicy
	Logger   logging.Logger
}

type classroomService struct {
	reg    *registry.Registry
	sess   *session.Session
	goals  *goals.Engine
	ledger *ledger.Ledger
	sink   export.Sink
	policy models.ActiveSubjectPolicy
	logger logging.Logger
}

func NewClassroomService(d Deps) ClassroomService {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Policy == "" {
		d.Policy = models.ClearIfAbsent
	}
	return &classroomService{
		reg:    d.Registry,
		sess:   d.Session,
		goals:  d.Goals,
		ledger: d.Ledger,
		sink:   d.Sink,
		policy: d.Policy,
		logger: d.Logger,
	}
}

func (s *classroomService) teacher() (string, error) {
	return s.sess.Require(models.RoleTeacher)
}

func (s *classroomService) student() (string, error) {
	return s.sess.Require(models.RoleStudent)
}

// findStudent resolves a target of a teacher action.
func (s *classroomService) findStudent(username string) (*models.UserRecord, error) {
	rec, ok := s.reg.Find(username)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUserNotFound, username)
	}
	if !rec.IsStudent() {
		return nil, fmt.Errorf("%w: %q", common.ErrNotStudent, username)
	}
	return rec, nil
}

func (s *classroomService) Roster(ctx context.Context) ([]export.RosterRow, error) {
	if _, err := s.teacher(); err != nil {
		return nil, err
	}
	return export.RosterRows(s.reg.All()), nil
}

func (s *classroomService) AssignQuest(ctx context.Context, student, quest string) (*models.UserRecord, error) {
	by, err := s.teacher()
	if err != nil {
		return nil, err
	}
	in := models.QuestAssignment{Student: student, Quest: quest}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.findStudent(in.Student); err != nil {
		return nil, err
	}
	rec, err := s.reg.Mutate(ctx, in.Student, func(u *models.UserRecord) error {
		u.AssignedQuest = in.Quest
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "quest assigned", "teacher", by, "student", in.Student, "quest", in.Quest)
	return rec, nil
}

// AssignSubjects replaces the student's subject set and reconciles the
// active subject with the configured policy.
func (s *classroomService) AssignSubjects(ctx context.Context, student string, subjects []string) (*models.UserRecord, error) {
	by, err := s.teacher()
	if err != nil {
		return nil, err
	}
	if _, err := s.findStudent(student); err != nil {
		return nil, err
	}
	next := models.NormalizeSubjects(subjects)
	rec, err := s.reg.Mutate(ctx, student, func(u *models.UserRecord) error {
		u.Subjects = next
		u.ReconcileActiveSubject(s.policy)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "subjects assigned", "teacher", by, "student", student,
		"subjects", strings.Join(rec.Subjects, ","), "active", rec.ActiveSubject)
	return rec, nil
}

func (s *classroomService) AddSubject(ctx context.Context, student, subject string) (*models.UserRecord, error) {
	if _, err := s.teacher(); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, common.ErrEmptySubject
	}
	if _, err := s.findStudent(student); err != nil {
		return nil, err
	}
	return s.reg.Mutate(ctx, student, func(u *models.UserRecord) error {
		if u.HasSubject(subject) {
			return registry.ErrUnchanged
		}
		u.Subjects = append(u.Subjects, subject)
		u.ReconcileActiveSubject(s.policy)
		return nil
	})
}

func (s *classroomService) CreateGoal(ctx context.Context, student string, in models.NewGoal) (models.Goal, error) {
	if _, err := s.teacher(); err != nil {
		return models.Goal{}, err
	}
	if _, err := s.findStudent(student); err != nil {
		return models.Goal{}, err
	}
	return s.goals.CreateGoal(ctx, student, in)
}

func (s *classroomService) PendingReviews(ctx context.Context) (iter.Seq[goals.Submission], error) {
	if _, err := s.teacher(); err != nil {
		return nil, err
	}
	return s.goals.ListSubmitted(), nil
}

func (s *classroomService) ApproveGoal(ctx context.Context, student, goalID string) (models.Goal, error) {
	if _, err := s.teacher(); err != nil {
		return models.Goal{}, err
	}
	return s.goals.Approve(ctx, student, goalID)
}

func (s *classroomService) RejectGoal(ctx context.Context, student, goalID string) (models.Goal, error) {
	if _, err := s.teacher(); err != nil {
		return models.Goal{}, err
	}
	return s.goals.Reject(ctx, student, goalID)
}

// ExportRegistry stores the registry JSON and the roster workbook and
// returns their locations.
func (s *classroomService) ExportRegistry(ctx context.Context) ([]string, error) {
	if _, err := s.teacher(); err != nil {
		return nil, err
	}
	if s.sink == nil {
		return nil, ErrNoSink
	}

	snapshot := s.reg.Snapshot()
	doc, err := export.All(snapshot)
	if err != nil {
		return nil, err
	}
	var xlsx bytes.Buffer
	if err := export.Roster(export.RosterRows(s.reg.All()), &xlsx); err != nil {
		return nil, err
	}

	var locs []string
	for _, f := range []struct {
		name string
		data []byte
	}{
		{export.RegistryFileName, doc},
		{export.RosterFileName, xlsx.Bytes()},
	} {
		loc, err := s.sink.Put(ctx, f.name, f.data)
		if err != nil {
			return locs, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

// SelectSubject sets the active subject to one of the student's subjects.
func (s *classroomService) SelectSubject(ctx context.Context, subject string) (*models.UserRecord, error) {
	me, err := s.student()
	if err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	return s.reg.Mutate(ctx, me, func(u *models.UserRecord) error {
		if !u.HasSubject(subject) {
			return fmt.Errorf("%w: %q", common.ErrSubjectNotAssigned, subject)
		}
		if u.ActiveSubject == subject {
			return registry.ErrUnchanged
		}
		u.ActiveSubject = subject
		return nil
	})
}

// AvailableQuests lists the quests offered for the active subject.
func (s *classroomService) AvailableQuests(ctx context.Context) ([]quests.Quest, error) {
	me, err := s.student()
	if err != nil {
		return nil, err
	}
	rec, ok := s.reg.Find(me)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUserNotFound, me)
	}
	return quests.ForSubject(rec.ActiveSubject), nil
}

// CompleteQuest checks answer and awards the quest badge. A wrong answer
// awards nothing. The typing quest counts no time here.
func (s *classroomService) CompleteQuest(ctx context.Context, questID, answer string) (*models.UserRecord, error) {
	me, err := s.student()
	if err != nil {
		return nil, err
	}
	q, err := quests.Lookup(questID)
	if err != nil {
		return nil, err
	}
	if q.Timed() {
		return s.completeTyping(ctx, me, q, answer, 0)
	}
	if err := q.Check(answer); err != nil {
		return nil, err
	}
	return s.ledger.AwardBadge(ctx, me, q.Badge)
}

// CompleteTypingQuest awards the typing badge and adds the elapsed whole
// minutes in a single write.
func (s *classroomService) CompleteTypingQuest(ctx context.Context, typed string, elapsedSeconds float64) (*models.UserRecord, error) {
	me, err := s.student()
	if err != nil {
		return nil, err
	}
	q, err := quests.Lookup(quests.TypingQuest)
	if err != nil {
		return nil, err
	}
	return s.completeTyping(ctx, me, q, typed, elapsedSeconds)
}

func (s *classroomService) completeTyping(ctx context.Context, me string, q quests.Quest, typed string, elapsedSeconds float64) (*models.UserRecord, error) {
	if err := ledger.CheckElapsed(elapsedSeconds); err != nil {
		return nil, err
	}
	if err := q.Check(typed); err != nil {
		return nil, err
	}
	rec, err := s.ledger.CompleteTimed(ctx, me, q.Badge, elapsedSeconds)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "typing quest finished", "username", me, "seconds", elapsedSeconds,
		"minutes", ledger.WholeMinutes(elapsedSeconds))
	return rec, nil
}

func (s *classroomService) MyGoals(ctx context.Context) ([]models.Goal, error) {
	me, err := s.student()
	if err != nil {
		return nil, err
	}
	rec, ok := s.reg.Find(me)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUserNotFound, me)
	}
	return slices.Clone(rec.WeeklyGoals), nil
}

func (s *classroomService) SubmitGoal(ctx context.Context, goalID string) (models.Goal, error) {
	me, err := s.student()
	if err != nil {
		return models.Goal{}, err
	}
	return s.goals.Submit(ctx, me, goalID)
}

// Progress renders the current user's text snapshot.
func (s *classroomService) Progress(ctx context.Context) (string, error) {
	if _, err := s.sess.RequireAny(); err != nil {
		return "", err
	}
	rec, ok := s.sess.Current()
	if !ok {
		return "", common.ErrNotLoggedIn
	}
	return export.User(rec), nil
}

// ExportSelf stores the current user's snapshot as <username>_progress.txt.
func (s *classroomService) ExportSelf(ctx context.Context) (string, error) {
	text, err := s.Progress(ctx)
	if err != nil {
		return "", err
	}
	if s.sink == nil {
		return "", ErrNoSink
	}
	return s.sink.Put(ctx, export.UserFileName(s.sess.Username()), []byte(text))
}
