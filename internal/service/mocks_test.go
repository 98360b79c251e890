package service

import (
	"sort"
	"time"

	"github.com/loftchat/loftchat-backend/internal/models"
	"gorm.io/gorm"
)

// In-memory fixture shared by the repository mocks so that cross-aggregate
// effects (room pointer advance, cascade) behave like the real store.
type mockDB struct {
	rooms         map[uint]*models.Room
	members       map[uint]*models.Member
	messages      map[uint]*models.Message
	categories    map[uint]*models.Category
	notifications map[uint]*models.Notification

	nextRoomID         uint
	nextMemberID       uint
	nextMessageID      uint
	nextCategoryID     uint
	nextNotificationID uint

	clock time.Time
}

func newMockDB() *mockDB {
	return &mockDB{
		rooms:              make(map[uint]*models.Room),
		members:            make(map[uint]*models.Member),
		messages:           make(map[uint]*models.Message),
		categories:         make(map[uint]*models.Category),
		notifications:      make(map[uint]*models.Notification),
		nextRoomID:         1,
		nextMemberID:       1,
		nextMessageID:      1,
		nextCategoryID:     1,
		nextNotificationID: 1,
		clock:              time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (db *mockDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// --- room repo ---

type mockRoomRepo struct{ db *mockDB }

func (m *mockRoomRepo) Create(room *models.Room) error {
	if room.ID == 0 {
		room.ID = m.db.nextRoomID
		m.db.nextRoomID++
	}
	room.CreatedAt = m.db.tick()
	m.db.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) FindByID(id uint) (*models.Room, error) {
	if room, ok := m.db.rooms[id]; ok {
		return room, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) UpdateInfo(id uint, name, avatar string) error {
	room, ok := m.db.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name != "" {
		room.Name = name
	}
	if avatar != "" {
		room.Avatar = avatar
	}
	return nil
}

// --- member repo ---

type mockMemberRepo struct{ db *mockDB }

func (m *mockMemberRepo) Create(member *models.Member) error {
	if member.ID == 0 {
		member.ID = m.db.nextMemberID
		m.db.nextMemberID++
	}
	if member.Role == "" {
		member.Role = models.RoleMember
	}
	m.db.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) FindByID(id uint) (*models.Member, error) {
	if member, ok := m.db.members[id]; ok {
		return member, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) FindByRoomAndUser(roomID, userID uint) (*models.Member, error) {
	for _, member := range m.db.members {
		if member.RoomID == roomID && member.UserID == userID {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) Delete(roomID, userID uint) error {
	for id, member := range m.db.members {
		if member.RoomID == roomID && member.UserID == userID {
			delete(m.db.members, id)
		}
	}
	return nil
}

func (m *mockMemberRepo) ListUserIDsByRoom(roomID uint) ([]uint, error) {
	var ids []uint
	for _, member := range m.db.members {
		if member.RoomID == roomID {
			ids = append(ids, member.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockMemberRepo) GetRole(roomID, userID uint) (models.MemberRole, error) {
	member, err := m.FindByRoomAndUser(roomID, userID)
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

func (m *mockMemberRepo) SetCategory(memberID uint, categoryID *uint) error {
	member, ok := m.db.members[memberID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	member.CategoryID = categoryID
	return nil
}

func (m *mockMemberRepo) ClearCategory(categoryID uint) (int64, error) {
	var cleared int64
	for _, member := range m.db.members {
		if member.CategoryID != nil && *member.CategoryID == categoryID {
			member.CategoryID = nil
			cleared++
		}
	}
	return cleared, nil
}

func (m *mockMemberRepo) AdvanceReadPointer(roomID, userID, messageID uint) (bool, error) {
	member, err := m.FindByRoomAndUser(roomID, userID)
	if err != nil {
		return false, nil
	}
	if member.LastReadMessageID != nil && *member.LastReadMessageID >= messageID {
		return false, nil
	}
	member.LastReadMessageID = &messageID
	return true, nil
}

// --- message repo ---

type mockMessageRepo struct{ db *mockDB }

func (m *mockMessageRepo) Create(message *models.Message) error {
	if message.ID == 0 {
		message.ID = m.db.nextMessageID
		m.db.nextMessageID++
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = m.db.tick()
	}
	m.db.messages[message.ID] = message
	if room, ok := m.db.rooms[message.RoomID]; ok {
		id := message.ID
		room.LastMessageID = &id
	}
	return nil
}

func (m *mockMessageRepo) FindByID(id uint) (*models.Message, error) {
	message, ok := m.db.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if member, ok := m.db.members[message.MemberID]; ok {
		message.Member = *member
	}
	return message, nil
}

func (m *mockMessageRepo) roomMessages(roomID uint) []*models.Message {
	var msgs []*models.Message
	for _, msg := range m.db.messages {
		if msg.RoomID == roomID {
			msgs = append(msgs, msg)
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].OrderedBefore(msgs[j]) })
	return msgs
}

func (m *mockMessageRepo) ListBefore(roomID uint, before *models.Message, limit int) ([]models.Message, error) {
	ordered := m.roomMessages(roomID)
	var result []models.Message
	for i := len(ordered) - 1; i >= 0 && len(result) < limit; i-- {
		if before != nil && !ordered[i].OrderedBefore(before) {
			continue
		}
		result = append(result, *ordered[i])
	}
	return result, nil
}

func (m *mockMessageRepo) LatestInRoom(roomID uint) (*models.Message, error) {
	ordered := m.roomMessages(roomID)
	if len(ordered) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return ordered[len(ordered)-1], nil
}

func (m *mockMessageRepo) CountAfter(roomID uint, after *models.Message) (int64, error) {
	var count int64
	for _, msg := range m.db.messages {
		if msg.RoomID != roomID {
			continue
		}
		if after == nil || after.OrderedBefore(msg) {
			count++
		}
	}
	return count, nil
}

func (m *mockMessageRepo) UpdateContent(id uint, content string) error {
	message, ok := m.db.messages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := m.db.tick()
	message.Content = content
	message.EditedAt = &now
	return nil
}

func (m *mockMessageRepo) SoftDelete(id uint) error {
	message, ok := m.db.messages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	message.IsDeleted = true
	message.Content = ""
	message.Attachments = nil
	return nil
}

func (m *mockMessageRepo) IsOwnedByUser(messageID, userID uint) (bool, error) {
	message, ok := m.db.messages[messageID]
	if !ok {
		return false, nil
	}
	member, ok := m.db.members[message.MemberID]
	if !ok {
		return false, nil
	}
	return member.UserID == userID, nil
}

// --- category repo ---

type mockCategoryRepo struct{ db *mockDB }

func (m *mockCategoryRepo) Create(category *models.Category) error {
	if category.ID == 0 {
		category.ID = m.db.nextCategoryID
		m.db.nextCategoryID++
	}
	m.db.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) FindByID(id uint) (*models.Category, error) {
	if category, ok := m.db.categories[id]; ok {
		return category, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) ListByUser(userID uint) ([]models.Category, error) {
	var result []models.Category
	for _, category := range m.db.categories {
		if category.UserID == userID {
			result = append(result, *category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Rank == result[j].Rank {
			return result[i].ID < result[j].ID
		}
		return result[i].Rank < result[j].Rank
	})
	return result, nil
}

func (m *mockCategoryRepo) NextRank(userID uint) (int, error) {
	max := -1
	for _, category := range m.db.categories {
		if category.UserID == userID && category.Rank > max {
			max = category.Rank
		}
	}
	return max + 1, nil
}

func (m *mockCategoryRepo) UpdateTitle(id uint, title string) error {
	category, ok := m.db.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	category.Title = title
	return nil
}

func (m *mockCategoryRepo) UpdateRank(id uint, rank int) error {
	category, ok := m.db.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	category.Rank = rank
	return nil
}

func (m *mockCategoryRepo) Delete(id uint) error {
	delete(m.db.categories, id)
	return nil
}

// --- notification repo ---

type mockNotificationRepo struct{ db *mockDB }

func (m *mockNotificationRepo) Create(notification *models.Notification) error {
	if notification.ID == 0 {
		notification.ID = m.db.nextNotificationID
		m.db.nextNotificationID++
	}
	notification.CreatedAt = m.db.tick()
	m.db.notifications[notification.ID] = notification
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(recipientID uint, offset, limit int) ([]models.Notification, error) {
	var all []*models.Notification
	for _, n := range m.db.notifications {
		if n.RecipientID == recipientID {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	var result []models.Notification
	for i := offset; i < len(all) && len(result) < limit; i++ {
		result = append(result, *all[i])
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(recipientID uint, ids []uint) (int64, error) {
	var updated int64
	for _, id := range ids {
		if n, ok := m.db.notifications[id]; ok && n.RecipientID == recipientID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (m *mockNotificationRepo) MarkAllRead(recipientID uint) (int64, error) {
	var updated int64
	for _, n := range m.db.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}
