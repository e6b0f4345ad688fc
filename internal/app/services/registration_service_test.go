package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/app/repositories"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
)

// --- In-memory fakes ---

type fakeTaskStore struct {
	tasks map[int64]*models.Task
}

func (f *fakeTaskStore) GetTaskByID(_ context.Context, id int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// fakeRegistrationStore mirrors the repository's semantics in memory: the
// unique (taskID, userID) pair, pending-only transitions and the
// capacity-checked slot claim on approval.
type fakeRegistrationStore struct {
	tasks  map[int64]*models.Task
	regs   map[int64]*models.TaskRegistration
	nextID int64
}

func newFakeRegistrationStore(tasks map[int64]*models.Task) *fakeRegistrationStore {
	return &fakeRegistrationStore{
		tasks: tasks,
		regs:  make(map[int64]*models.TaskRegistration),
	}
}

func (f *fakeRegistrationStore) CreateRegistration(_ context.Context, reg *models.TaskRegistration) (int64, error) {
	for _, existing := range f.regs {
		if existing.TaskID == reg.TaskID && existing.UserID == reg.UserID {
			return 0, apperrors.ErrAlreadyRegistered
		}
	}

	f.nextID++
	reg.ID = f.nextID
	reg.RegisteredAt = time.Now()
	f.regs[reg.ID] = reg
	return reg.ID, nil
}

func (f *fakeRegistrationStore) GetRegistrationByID(_ context.Context, id int64) (*models.TaskRegistration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	return reg, nil
}

func (f *fakeRegistrationStore) ExistsByTaskAndUser(_ context.Context, taskID, userID int64) (bool, error) {
	for _, reg := range f.regs {
		if reg.TaskID == taskID && reg.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationStore) Approve(_ context.Context, id int64) (*models.TaskRegistration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	if reg.Status != models.RegistrationStatusPending {
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("registration is %s and can no longer be approved", reg.Status))
	}

	task := f.tasks[reg.TaskID]
	if !task.HasCapacity() {
		return nil, apperrors.ErrTaskFull
	}
	task.CurrentVolunteers++

	now := time.Now()
	reg.Status = models.RegistrationStatusApproved
	reg.RespondedAt = &now
	return reg, nil
}

func (f *fakeRegistrationStore) Reject(_ context.Context, id int64, reason *string) (*models.TaskRegistration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	if reg.Status != models.RegistrationStatusPending {
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("registration is %s and can no longer be rejected", reg.Status))
	}

	now := time.Now()
	reg.Status = models.RegistrationStatusRejected
	reg.RejectionReason = reason
	reg.RespondedAt = &now
	return reg, nil
}

func (f *fakeRegistrationStore) DeleteRegistration(_ context.Context, id int64) error {
	if _, ok := f.regs[id]; !ok {
		return apperrors.ErrRegistrationNotFound
	}
	delete(f.regs, id)
	return nil
}

func (f *fakeRegistrationStore) ListRegistrations(_ context.Context, filter repositories.RegistrationFilter, offset uint64, limit int) ([]*models.TaskRegistration, int64, error) {
	var matched []*models.TaskRegistration
	for _, reg := range f.regs {
		if filter.Status != nil && reg.Status != *filter.Status {
			continue
		}
		if filter.TaskID != nil && reg.TaskID != *filter.TaskID {
			continue
		}
		if filter.UserID != nil && reg.UserID != *filter.UserID {
			continue
		}
		if filter.OrganizationID != nil && f.tasks[reg.TaskID].OrganizationID != *filter.OrganizationID {
			continue
		}
		matched = append(matched, reg)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

type fakeNotifier struct {
	sent []*models.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n *models.Notification) {
	f.sent = append(f.sent, n)
}

func (f *fakeNotifier) lastTo(userID int64) *models.Notification {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].UserID == userID {
			return f.sent[i]
		}
	}
	return nil
}

// --- Fixture ---

const (
	fxActiveTaskID   = int64(10)
	fxDraftTaskID    = int64(11)
	fxExpiredTaskID  = int64(12)
	fxOtherOrgTaskID = int64(13)

	fxOrgID      = int64(3)
	fxOtherOrgID = int64(4)

	fxVolunteerID  = int64(20)
	fxVolunteer2ID = int64(21)
	fxCreatorID    = int64(30)
)

func newRegistrationFixture() (*RegistrationService, *fakeRegistrationStore, *fakeNotifier) {
	tasks := map[int64]*models.Task{
		fxActiveTaskID: {
			ID: fxActiveTaskID, OrganizationID: fxOrgID, CreatedBy: fxCreatorID,
			Title: "Beach cleanup", Status: models.TaskStatusActive,
			EndDate: time.Now().Add(48 * time.Hour), MaxVolunteers: 2,
		},
		fxDraftTaskID: {
			ID: fxDraftTaskID, OrganizationID: fxOrgID, CreatedBy: fxCreatorID,
			Title: "Food drive", Status: models.TaskStatusDraft,
			EndDate: time.Now().Add(48 * time.Hour), MaxVolunteers: 5,
		},
		fxExpiredTaskID: {
			ID: fxExpiredTaskID, OrganizationID: fxOrgID, CreatedBy: fxCreatorID,
			Title: "Past event", Status: models.TaskStatusActive,
			EndDate: time.Now().Add(-time.Hour), MaxVolunteers: 5,
		},
		fxOtherOrgTaskID: {
			ID: fxOtherOrgTaskID, OrganizationID: fxOtherOrgID, CreatedBy: fxCreatorID,
			Title: "Shelter shift", Status: models.TaskStatusActive,
			EndDate: time.Now().Add(48 * time.Hour), MaxVolunteers: 2,
		},
	}
	users := map[int64]*models.User{
		fxVolunteerID:  {ID: fxVolunteerID, FirstName: "Jane", LastName: "Doe", Role: models.RoleUser, IsActive: true},
		fxVolunteer2ID: {ID: fxVolunteer2ID, FirstName: "John", LastName: "Roe", Role: models.RoleUser, IsActive: true},
	}

	regStore := newFakeRegistrationStore(tasks)
	notifier := &fakeNotifier{}
	svc := NewRegistrationService(
		regStore,
		&fakeTaskStore{tasks: tasks},
		&fakeUserStore{users: users},
		&auth.AuthorizationService{},
		notifier,
		zerolog.Nop(),
	)
	return svc, regStore, notifier
}

func volunteerPrincipal(userID int64) auth.Principal {
	return auth.Principal{UserID: userID, Role: models.RoleUser}
}

func orgAdminPrincipal(orgID int64) auth.Principal {
	return auth.Principal{UserID: fxCreatorID, Role: models.RoleOrganizationAdmin, OrganizationID: &orgID}
}

func register(t *testing.T, svc *RegistrationService, userID, taskID int64) *dto.RegistrationResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), volunteerPrincipal(userID),
		&dto.CreateRegistrationRequest{TaskID: taskID, ApplicationMessage: "count me in"})
	require.NoError(t, err)
	return resp
}

// --- Register ---

func TestRegisterCreatesPendingRegistration(t *testing.T) {
	svc, store, notifier := newRegistrationFixture()

	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)

	assert.Equal(t, string(models.RegistrationStatusPending), resp.Status)
	assert.Equal(t, fxVolunteerID, resp.UserID)
	// a pending application does not claim a volunteer slot
	assert.Equal(t, 0, store.tasks[fxActiveTaskID].CurrentVolunteers)

	// the task's creator is told about the new application
	n := notifier.lastTo(fxCreatorID)
	require.NotNil(t, n)
	assert.Equal(t, models.NotificationRegistrationReceived, n.Type)
}

func TestRegisterDuplicateIsRejected(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	register(t, svc, fxVolunteerID, fxActiveTaskID)

	_, err := svc.Register(context.Background(), volunteerPrincipal(fxVolunteerID),
		&dto.CreateRegistrationRequest{TaskID: fxActiveTaskID})
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyRegistered))
}

func TestRegisterUnknownTask(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Register(context.Background(), volunteerPrincipal(fxVolunteerID),
		&dto.CreateRegistrationRequest{TaskID: 999})
	assert.True(t, errors.Is(err, apperrors.ErrTaskNotFound))
}

func TestRegisterTaskNotAcceptingRegistrations(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Register(context.Background(), volunteerPrincipal(fxVolunteerID),
		&dto.CreateRegistrationRequest{TaskID: fxDraftTaskID})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.Contains(t, err.Error(), "not accepting")
}

func TestRegisterDeadlinePassed(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Register(context.Background(), volunteerPrincipal(fxVolunteerID),
		&dto.CreateRegistrationRequest{TaskID: fxExpiredTaskID})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.Contains(t, err.Error(), "deadline")
}

// --- Approve / Reject ---

func TestApproveClaimsOneSlotAndNotifiesVolunteer(t *testing.T) {
	svc, store, notifier := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)

	approved, err := svc.Approve(context.Background(), orgAdminPrincipal(fxOrgID), resp.ID)
	require.NoError(t, err)

	assert.Equal(t, string(models.RegistrationStatusApproved), approved.Status)
	assert.NotNil(t, approved.RespondedAt)
	assert.Equal(t, 1, store.tasks[fxActiveTaskID].CurrentVolunteers)

	n := notifier.lastTo(fxVolunteerID)
	require.NotNil(t, n)
	assert.Equal(t, models.NotificationRegistrationApproved, n.Type)
}

func TestApproveOnlyPendingRegistrations(t *testing.T) {
	svc, store, _ := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)
	admin := orgAdminPrincipal(fxOrgID)

	_, err := svc.Approve(context.Background(), admin, resp.ID)
	require.NoError(t, err)

	// deciding twice is refused and claims no second slot
	_, err = svc.Approve(context.Background(), admin, resp.ID)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	_, err = svc.Reject(context.Background(), admin, resp.ID, "changed my mind")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.Equal(t, 1, store.tasks[fxActiveTaskID].CurrentVolunteers)
}

func TestApproveFullTask(t *testing.T) {
	svc, store, _ := newRegistrationFixture()
	store.tasks[fxActiveTaskID].MaxVolunteers = 1
	first := register(t, svc, fxVolunteerID, fxActiveTaskID)
	second := register(t, svc, fxVolunteer2ID, fxActiveTaskID)
	admin := orgAdminPrincipal(fxOrgID)

	_, err := svc.Approve(context.Background(), admin, first.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), admin, second.ID)
	assert.True(t, errors.Is(err, apperrors.ErrTaskFull))
	// the failed approval leaves the application pending
	assert.Equal(t, models.RegistrationStatusPending, store.regs[second.ID].Status)
	assert.Equal(t, 1, store.tasks[fxActiveTaskID].CurrentVolunteers)
}

func TestApproveRequiresOrganizationAdmin(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)

	// a member of the task's organization may not decide
	memberOrg := fxOrgID
	member := auth.Principal{UserID: 31, Role: models.RoleOrganizationMember, OrganizationID: &memberOrg}
	_, err := svc.Approve(context.Background(), member, resp.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// nor may an admin of a different organization
	_, err = svc.Approve(context.Background(), orgAdminPrincipal(fxOtherOrgID), resp.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// a system administrator may
	_, err = svc.Approve(context.Background(), auth.Principal{UserID: 1, Role: models.RoleSystemAdmin}, resp.ID)
	assert.NoError(t, err)
}

func TestRejectStoresReason(t *testing.T) {
	svc, store, notifier := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)

	rejected, err := svc.Reject(context.Background(), orgAdminPrincipal(fxOrgID), resp.ID, "shift already covered")
	require.NoError(t, err)

	assert.Equal(t, string(models.RegistrationStatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "shift already covered", *rejected.RejectionReason)
	// rejection never touches capacity
	assert.Equal(t, 0, store.tasks[fxActiveTaskID].CurrentVolunteers)

	n := notifier.lastTo(fxVolunteerID)
	require.NotNil(t, n)
	assert.Equal(t, models.NotificationRegistrationRejected, n.Type)
	assert.Contains(t, n.Message, "shift already covered")
}

func TestUpdateStatusDelegatesToDecisions(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	admin := orgAdminPrincipal(fxOrgID)

	first := register(t, svc, fxVolunteerID, fxActiveTaskID)
	resp, err := svc.UpdateStatus(context.Background(), admin, first.ID,
		&dto.UpdateRegistrationStatusRequest{Status: string(models.RegistrationStatusApproved)})
	require.NoError(t, err)
	assert.Equal(t, string(models.RegistrationStatusApproved), resp.Status)

	second := register(t, svc, fxVolunteer2ID, fxActiveTaskID)
	resp, err = svc.UpdateStatus(context.Background(), admin, second.ID,
		&dto.UpdateRegistrationStatusRequest{Status: string(models.RegistrationStatusRejected), Reason: "full crew"})
	require.NoError(t, err)
	assert.Equal(t, string(models.RegistrationStatusRejected), resp.Status)

	// only the two decision states are reachable through this endpoint
	_, err = svc.UpdateStatus(context.Background(), admin, second.ID,
		&dto.UpdateRegistrationStatusRequest{Status: string(models.RegistrationStatusPending)})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

// --- Delete ---

func TestDeleteWithdrawsPendingRegistration(t *testing.T) {
	svc, store, _ := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)

	err := svc.Delete(context.Background(), volunteerPrincipal(fxVolunteerID), resp.ID)
	require.NoError(t, err)
	assert.NotContains(t, store.regs, resp.ID)
}

func TestDeleteForbiddenForApproved(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)
	_, err := svc.Approve(context.Background(), orgAdminPrincipal(fxOrgID), resp.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), volunteerPrincipal(fxVolunteerID), resp.ID)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
}

func TestDeleteOtherUsersRegistration(t *testing.T) {
	svc, store, _ := newRegistrationFixture()
	resp := register(t, svc, fxVolunteerID, fxActiveTaskID)

	err := svc.Delete(context.Background(), volunteerPrincipal(fxVolunteer2ID), resp.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// a system administrator may remove any non-approved registration
	err = svc.Delete(context.Background(), auth.Principal{UserID: 1, Role: models.RoleSystemAdmin}, resp.ID)
	require.NoError(t, err)
	assert.NotContains(t, store.regs, resp.ID)
}

// --- Lists ---

func TestListAllRequiresPermission(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.ListAll(context.Background(), volunteerPrincipal(fxVolunteerID),
		&dto.RegistrationFilterRequest{Page: 1, PageSize: 10})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	data, err := svc.ListAll(context.Background(), auth.Principal{UserID: 1, Role: models.RoleSystemAdmin},
		&dto.RegistrationFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), data.TotalCount)
}

func TestListByUserSelfOrAdmin(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	register(t, svc, fxVolunteerID, fxActiveTaskID)
	register(t, svc, fxVolunteerID, fxOtherOrgTaskID)
	register(t, svc, fxVolunteer2ID, fxActiveTaskID)

	data, err := svc.ListByUser(context.Background(), volunteerPrincipal(fxVolunteerID), fxVolunteerID,
		&dto.RegistrationFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.TotalCount)

	_, err = svc.ListByUser(context.Background(), volunteerPrincipal(fxVolunteer2ID), fxVolunteerID,
		&dto.RegistrationFilterRequest{Page: 1, PageSize: 10})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestListPendingByOrganizationFiltersByOrgAndStatus(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	admin := orgAdminPrincipal(fxOrgID)

	decided := register(t, svc, fxVolunteerID, fxActiveTaskID)
	_, err := svc.Approve(context.Background(), admin, decided.ID)
	require.NoError(t, err)

	pending := register(t, svc, fxVolunteer2ID, fxActiveTaskID)
	register(t, svc, fxVolunteerID, fxOtherOrgTaskID) // other organization, stays out

	data, err := svc.ListPendingByOrganization(context.Background(), admin, fxOrgID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), data.TotalCount)

	items, ok := data.Items.([]dto.RegistrationResponse)
	require.True(t, ok)
	assert.Equal(t, pending.ID, items[0].ID)
	assert.Equal(t, string(models.RegistrationStatusPending), items[0].Status)
}

func TestListPendingByOrganizationAccess(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	// membership alone is not enough
	memberOrg := fxOrgID
	member := auth.Principal{UserID: 31, Role: models.RoleOrganizationMember, OrganizationID: &memberOrg}
	_, err := svc.ListPendingByOrganization(context.Background(), member, fxOrgID, 1, 10)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// nor is administering a different organization
	_, err = svc.ListPendingByOrganization(context.Background(), orgAdminPrincipal(fxOtherOrgID), fxOrgID, 1, 10)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	_, err = svc.ListPendingByOrganization(context.Background(), orgAdminPrincipal(fxOrgID), fxOrgID, 1, 10)
	assert.NoError(t, err)

	_, err = svc.ListPendingByOrganization(context.Background(), auth.Principal{UserID: 1, Role: models.RoleSystemAdmin}, fxOrgID, 1, 10)
	assert.NoError(t, err)
}
