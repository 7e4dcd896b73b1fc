package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

// In-memory fakes for the repository interfaces and the notifier.

type fakeShipmentRepo struct {
	shipments map[uuid.UUID]*domain.Shipment
	// interfere runs between the service's read and its conditional write,
	// simulating a concurrent actor.
	interfere func()
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: make(map[uuid.UUID]*domain.Shipment)}
}

func (f *fakeShipmentRepo) Create(ctx context.Context, shipment *domain.Shipment) error {
	shipment.ID = uuid.New()
	shipment.CreatedAt = time.Now()
	shipment.UpdatedAt = shipment.CreatedAt
	stored := *shipment
	f.shipments[shipment.ID] = &stored
	return nil
}

func (f *fakeShipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	stored, ok := f.shipments[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "shipment", ID: id.String()}
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeShipmentRepo) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	for _, stored := range f.shipments {
		if stored.TrackingNumber == trackingNumber {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "shipment", ID: trackingNumber}
}

func (f *fakeShipmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ShipmentStatus, expectedCurrent domain.ShipmentStatus, cancelReason *string) error {
	if f.interfere != nil {
		f.interfere()
		f.interfere = nil
	}
	stored, ok := f.shipments[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "shipment", ID: id.String()}
	}
	if stored.Status != expectedCurrent {
		return &errors.ErrConflict{Message: "shipment status changed concurrently"}
	}
	stored.Status = status
	if cancelReason != nil {
		stored.CancelReason = cancelReason
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeShipmentRepo) List(ctx context.Context, limit, offset int) ([]*domain.Shipment, error) {
	var out []*domain.Shipment
	for _, stored := range f.shipments {
		copied := *stored
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeShipmentRepo) ListByStatus(ctx context.Context, status domain.ShipmentStatus, limit, offset int) ([]*domain.Shipment, error) {
	var out []*domain.Shipment
	for _, stored := range f.shipments {
		if stored.Status == status {
			copied := *stored
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events []*domain.ShipmentEvent
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.ShipmentEvent) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) GetByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*domain.ShipmentEvent, error) {
	var out []*domain.ShipmentEvent
	for _, event := range f.events {
		if event.ShipmentID == shipmentID {
			out = append(out, event)
		}
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles       map[uuid.UUID]*domain.Role
	deleteCalls int
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uuid.UUID]*domain.Role)}
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	role.ID = uuid.New()
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	stored := *role
	f.roles[role.ID] = &stored
	return nil
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	stored, ok := f.roles[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "role", ID: id.String()}
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	for _, stored := range f.roles {
		if stored.Name == name {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "role", ID: name}
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, stored := range f.roles {
		copied := *stored
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRoleRepo) Update(ctx context.Context, role *domain.Role) error {
	stored, ok := f.roles[role.ID]
	if !ok {
		return &errors.ErrNotFound{Resource: "role", ID: role.ID.String()}
	}
	stored.Name = role.Name
	stored.Description = role.Description
	stored.Permissions = role.Permissions
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRoleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if _, ok := f.roles[id]; !ok {
		return &errors.ErrNotFound{Resource: "role", ID: id.String()}
	}
	delete(f.roles, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	stored, ok := f.users[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, stored := range f.users {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: email}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) error {
	stored, ok := f.users[userID]
	if !ok {
		return &errors.ErrNotFound{Resource: "user", ID: userID.String()}
	}
	stored.RoleID = &roleID
	return nil
}

type fakeTicketRepo struct {
	tickets map[uuid.UUID]*domain.SupportTicket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*domain.SupportTicket)}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	ticket.ID = uuid.New()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	stored, ok := f.tickets[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "support ticket", ID: id.String()}
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeTicketRepo) List(ctx context.Context, limit, offset int) ([]*domain.SupportTicket, error) {
	var out []*domain.SupportTicket
	for _, stored := range f.tickets {
		copied := *stored
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTicketRepo) ListByStatus(ctx context.Context, status domain.TicketStatus, limit, offset int) ([]*domain.SupportTicket, error) {
	var out []*domain.SupportTicket
	for _, stored := range f.tickets {
		if stored.Status == status {
			copied := *stored
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) error {
	stored, ok := f.tickets[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "support ticket", ID: id.String()}
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	return nil
}

type fakeReplyRepo struct {
	replies []*domain.TicketReply
}

func (f *fakeReplyRepo) Create(ctx context.Context, reply *domain.TicketReply) error {
	reply.ID = uuid.New()
	reply.CreatedAt = time.Now()
	f.replies = append(f.replies, reply)
	return nil
}

func (f *fakeReplyRepo) GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*domain.TicketReply, error) {
	var out []*domain.TicketReply
	for _, reply := range f.replies {
		if reply.TicketID == ticketID {
			out = append(out, reply)
		}
	}
	return out, nil
}

type fakeIdempotencyRepo struct {
	keys map[string]*domain.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*domain.IdempotencyKey)}
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error) {
	stored, ok := f.keys[key]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, key *domain.IdempotencyKey) error {
	if _, ok := f.keys[key.Key]; ok {
		return nil
	}
	stored := *key
	f.keys[key.Key] = &stored
	return nil
}

type fakeNotifier struct {
	events []notify.Event
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, event notify.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func newFakeRepos() (*repository.Repositories, *fakeShipmentRepo, *fakeEventRepo, *fakeRoleRepo) {
	shipments := newFakeShipmentRepo()
	events := &fakeEventRepo{}
	roles := newFakeRoleRepo()
	repos := &repository.Repositories{
		Shipment:       shipments,
		ShipmentEvent:  events,
		Role:           roles,
		User:           newFakeUserRepo(),
		SupportTicket:  newFakeTicketRepo(),
		TicketReply:    &fakeReplyRepo{},
		IdempotencyKey: newFakeIdempotencyRepo(),
	}
	return repos, shipments, events, roles
}
