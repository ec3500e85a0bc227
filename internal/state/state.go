package state

import (
	"sort"

	"privdm_backend/internal/models"
)

// Data — весь снапшот контроллера сессий/доступа. Живет только в памяти
// и теряется при рестарте; единственное персистентное состояние процесса —
// реестр активных хэндлов (internal/registry).
type Data struct {
	Users     map[string]*models.User
	Requests  map[string]*models.ChatRequest
	Messages  []*models.Message // append-only журнал
	Content   map[string]*models.PrivateContent
	Feedback  map[string]*models.Feedback
	GiftCards []*models.GiftCard
}

func NewData() *Data {
	return &Data{
		Users:    make(map[string]*models.User),
		Requests: make(map[string]*models.ChatRequest),
		Content:  make(map[string]*models.PrivateContent),
		Feedback: make(map[string]*models.Feedback),
	}
}

// UserByID возвращает пользователя или nil.
func (d *Data) UserByID(id string) *models.User {
	return d.Users[id]
}

// UserByHandle ищет пользователя по хэндлу. Хэндл отображается максимум
// на одну запись, это инвариант снапшота.
func (d *Data) UserByHandle(handle string) *models.User {
	for _, u := range d.Users {
		if u.Handle == handle {
			return u
		}
	}
	return nil
}

// RequestByID возвращает запрос на чат или nil.
func (d *Data) RequestByID(id string) *models.ChatRequest {
	return d.Requests[id]
}

// RequestByHandle ищет запрос по хэндлу. Запрос и пользователь с одним
// хэндлом взаимоисключающи: принятие запроса удаляет запрос и создает
// пользователя.
func (d *Data) RequestByHandle(handle string) *models.ChatRequest {
	for _, r := range d.Requests {
		if r.Handle == handle {
			return r
		}
	}
	return nil
}

// MessageByID возвращает сообщение или nil.
func (d *Data) MessageByID(id string) *models.Message {
	for _, m := range d.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ContentByID возвращает контент или nil.
func (d *Data) ContentByID(id string) *models.PrivateContent {
	return d.Content[id]
}

// FeedbackByID возвращает отзыв или nil.
func (d *Data) FeedbackByID(id string) *models.Feedback {
	return d.Feedback[id]
}

// ListUsers возвращает копии пользователей, отсортированные по дате регистрации.
func (d *Data) ListUsers() []*models.User {
	users := make([]*models.User, 0, len(d.Users))
	for _, u := range d.Users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].JoinedAt.Equal(users[j].JoinedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].JoinedAt.Before(users[j].JoinedAt)
	})
	return users
}

// ListRequests возвращает копии запросов с данным статусом (или всех при "").
func (d *Data) ListRequests(status models.RequestStatus) []*models.ChatRequest {
	requests := make([]*models.ChatRequest, 0, len(d.Requests))
	for _, r := range d.Requests {
		if status != "" && r.Status != status {
			continue
		}
		cp := *r
		requests = append(requests, &cp)
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].RequestedAt.Equal(requests[j].RequestedAt) {
			return requests[i].ID < requests[j].ID
		}
		return requests[i].RequestedAt.Before(requests[j].RequestedAt)
	})
	return requests
}

// MessagesForUser возвращает копии сообщений переписки пользователя с админом,
// в порядке добавления.
func (d *Data) MessagesForUser(userID string) []*models.Message {
	out := make([]*models.Message, 0)
	for _, m := range d.Messages {
		if m.Between(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

// ListContent возвращает копии контента, отсортированные по дате загрузки.
func (d *Data) ListContent() []*models.PrivateContent {
	items := make([]*models.PrivateContent, 0, len(d.Content))
	for _, c := range d.Content {
		items = append(items, c.Clone())
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].UploadedAt.Equal(items[j].UploadedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].UploadedAt.Before(items[j].UploadedAt)
	})
	return items
}

// ListFeedback возвращает копии отзывов по дате.
func (d *Data) ListFeedback() []*models.Feedback {
	items := make([]*models.Feedback, 0, len(d.Feedback))
	for _, f := range d.Feedback {
		cp := *f
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SubmittedAt.Equal(items[j].SubmittedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items
}

// GiftCardsForUser возвращает копии записей об оплатах пользователя.
func (d *Data) GiftCardsForUser(userID string) []*models.GiftCard {
	out := make([]*models.GiftCard, 0)
	for _, g := range d.GiftCards {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out
}

// ActiveChatUserIDs — id пользователей, встречающихся в журнале сообщений
// (собеседники админа).
func (d *Data) ActiveChatUserIDs(adminHandle string) []string {
	seen := make(map[string]bool)
	order := make([]string, 0)
	for _, m := range d.Messages {
		other := m.SenderID
		if other == adminHandle {
			other = m.RecipientID
		}
		if other == adminHandle || other == "" || seen[other] {
			continue
		}
		seen[other] = true
		order = append(order, other)
	}
	return order
}
