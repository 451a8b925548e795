package usershandler

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"

	authutils "servis-takip-backend/lib/utils/auth-utils"
	"servis-takip-backend/models"
	userapimodels "servis-takip-backend/models/api/user"
	dbmodels "servis-takip-backend/models/db"
)

type fakeUsersStore struct {
	users  map[string]*dbmodels.User
	nextID int
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{users: map[string]*dbmodels.User{}}
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) {
	f.nextID++
	rec.ID = "u" + string(rune('0'+f.nextID))
	f.users[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	return f.users[id], nil
}

func (f *fakeUsersStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.Email == email {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeUsersStore) List() ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.users {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeUsersStore) Update(id string, updMap map[string]interface{}) error {
	rec := f.users[id]
	if value, ok := updMap["is_active"]; ok {
		rec.IsActive = value.(bool)
	}
	if value, ok := updMap["email"]; ok {
		rec.Email = value.(string)
	}
	return nil
}

func (f *fakeUsersStore) Delete(id string) error {
	delete(f.users, id)
	return nil
}

type fakeHub struct {
	connected map[string]bool
	closed    []string
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn) { f.connected[userID] = true }
func (f *fakeHub) DeleteClient(userID string)                    { delete(f.connected, userID) }
func (f *fakeHub) Broadcast(code models.WsEventCode, msg string) {}
func (f *fakeHub) SendClose(userID string)                       { f.closed = append(f.closed, userID) }
func (f *fakeHub) IsConnected(userID string) bool                { return f.connected[userID] }

func newTestHandler() (Provider, *fakeUsersStore, *fakeHub) {
	store := newFakeUsersStore()
	hub := &fakeHub{connected: map[string]bool{}}
	return NewInstance(store, hub), store, hub
}

func validUser() userapimodels.UserData {
	return userapimodels.UserData{
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
		Email:     "ayse@servis.example",
		Password:  "gizli123",
		Role:      models.StaffRole,
	}
}

func TestUserCreate(t *testing.T) {
	t.Run("şifre özetlenerek kaydedilir", func(t *testing.T) {
		handler, store, _ := newTestHandler()

		id, err := handler.Create(validUser())
		require.NoError(t, err)

		rec := store.users[id]
		require.Equal(t, authutils.GetMD5Hash("gizli123"), rec.Password)
		require.True(t, rec.IsActive)
	})

	t.Run("aynı e-posta ikinci kez kabul edilmez", func(t *testing.T) {
		handler, _, _ := newTestHandler()
		_, err := handler.Create(validUser())
		require.NoError(t, err)

		_, err = handler.Create(validUser())
		require.Error(t, err)
	})

	t.Run("şifresiz kullanıcı oluşturulamaz", func(t *testing.T) {
		handler, _, _ := newTestHandler()
		data := validUser()
		data.Password = ""
		_, err := handler.Create(data)
		require.Error(t, err)
	})
}

func TestUserSessionClose(t *testing.T) {
	t.Run("pasifleştirilen kullanıcının ws oturumu kapatılır", func(t *testing.T) {
		handler, _, hub := newTestHandler()
		id, err := handler.Create(validUser())
		require.NoError(t, err)
		hub.connected[id] = true

		data := validUser()
		inactive := false
		data.IsActive = &inactive
		require.NoError(t, handler.Update(id, data))
		require.Equal(t, []string{id}, hub.closed)
	})

	t.Run("aktif kalan güncelleme oturuma dokunmaz", func(t *testing.T) {
		handler, _, hub := newTestHandler()
		id, err := handler.Create(validUser())
		require.NoError(t, err)
		hub.connected[id] = true

		require.NoError(t, handler.Update(id, validUser()))
		require.Empty(t, hub.closed)
	})

	t.Run("silinen kullanıcının ws oturumu kapatılır", func(t *testing.T) {
		handler, store, hub := newTestHandler()
		id, err := handler.Create(validUser())
		require.NoError(t, err)
		hub.connected[id] = true

		require.NoError(t, handler.Delete(id))
		require.Empty(t, store.users)
		require.Equal(t, []string{id}, hub.closed)
	})

	t.Run("bağlı olmayan kullanıcı için kapama çağrılmaz", func(t *testing.T) {
		handler, _, hub := newTestHandler()
		id, err := handler.Create(validUser())
		require.NoError(t, err)

		require.NoError(t, handler.Delete(id))
		require.Empty(t, hub.closed)
	})
}
