package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	mu          sync.Mutex
	users       map[uint]*model.User
	nextID      uint
	lastUpdates map[string]interface{}
	listCalls   atomic.Int32
	listErr     error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uint]*model.User)}
	for i := range users {
		u := users[i]
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
		s.users[u.ID] = &u
	}
	return s
}

func (s *fakeUserStore) List(ctx context.Context, params listview.RequestParams) ([]model.User, int64, error) {
	s.listCalls.Add(1)
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]model.User, 0, len(s.users))
	for id := uint(1); id <= s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			rows = append(rows, *u)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) Updates(ctx context.Context, id uint, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.lastUpdates = updates
	if v, ok := updates["name"].(string); ok {
		u.Name = v
	}
	if v, ok := updates["email"].(string); ok {
		u.Email = v
	}
	if v, ok := updates["password"].(string); ok {
		u.Password = v
	}
	if v, ok := updates["status"].(int); ok {
		u.Status = v
	}
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

type fakeArticleStore struct {
	articles map[uint]*model.Article
	nextID   uint
}

func newFakeArticleStore(articles ...model.Article) *fakeArticleStore {
	s := &fakeArticleStore{articles: make(map[uint]*model.Article)}
	for i := range articles {
		a := articles[i]
		if a.ID > s.nextID {
			s.nextID = a.ID
		}
		s.articles[a.ID] = &a
	}
	return s
}

func (s *fakeArticleStore) List(ctx context.Context, params listview.RequestParams) ([]model.Article, int64, error) {
	var rows []model.Article
	for id := uint(1); id <= s.nextID; id++ {
		if a, ok := s.articles[id]; ok {
			rows = append(rows, *a)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *fakeArticleStore) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	a, ok := s.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeArticleStore) Create(ctx context.Context, article *model.Article) error {
	s.nextID++
	article.ID = s.nextID
	cp := *article
	s.articles[article.ID] = &cp
	return nil
}

func (s *fakeArticleStore) Updates(ctx context.Context, id uint, updates map[string]interface{}) error {
	a, ok := s.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["slug"].(string); ok {
		a.Slug = v
	}
	if v, ok := updates["title"].(string); ok {
		a.Title = v
	}
	return nil
}

func (s *fakeArticleStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.articles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.articles, id)
	return nil
}

func (s *fakeArticleStore) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	for id, a := range s.articles {
		if a.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCouponStore struct {
	coupons map[uint]*model.Coupon
	nextID  uint
	// beforeRedeem runs ahead of the conditional update, standing in for a
	// concurrent writer.
	beforeRedeem func(c *model.Coupon)
}

func newFakeCouponStore(coupons ...model.Coupon) *fakeCouponStore {
	s := &fakeCouponStore{coupons: make(map[uint]*model.Coupon)}
	for i := range coupons {
		c := coupons[i]
		if c.ID > s.nextID {
			s.nextID = c.ID
		}
		s.coupons[c.ID] = &c
	}
	return s
}

func (s *fakeCouponStore) List(ctx context.Context, params listview.RequestParams) ([]model.Coupon, int64, error) {
	var rows []model.Coupon
	for id := uint(1); id <= s.nextID; id++ {
		if c, ok := s.coupons[id]; ok {
			rows = append(rows, *c)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *fakeCouponStore) GetByID(ctx context.Context, id uint) (*model.Coupon, error) {
	c, ok := s.coupons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCouponStore) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	for _, c := range s.coupons {
		if strings.EqualFold(c.Code, code) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCouponStore) CreateBatch(ctx context.Context, coupons []model.Coupon) error {
	for i := range coupons {
		s.nextID++
		coupons[i].ID = s.nextID
		cp := coupons[i]
		s.coupons[cp.ID] = &cp
	}
	return nil
}

func (s *fakeCouponStore) Updates(ctx context.Context, id uint, updates map[string]interface{}) error {
	c, ok := s.coupons[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["start_time"].(time.Time); ok {
		c.StartTime = v
	}
	if v, ok := updates["expire_time"].(time.Time); ok {
		c.ExpireTime = v
	}
	if v, ok := updates["name"].(string); ok {
		c.Name = v
	}
	return nil
}

func (s *fakeCouponStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.coupons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.coupons, id)
	return nil
}

func (s *fakeCouponStore) Redeem(ctx context.Context, id, userID uint, at time.Time) (bool, error) {
	c, ok := s.coupons[id]
	if !ok {
		return false, nil
	}
	if s.beforeRedeem != nil {
		s.beforeRedeem(c)
	}
	if !c.Available(at) {
		return false, nil
	}
	c.UserID = &userID
	c.RedeemedAt = &at
	return true, nil
}

type fakeAddressStore struct {
	addresses map[uint]*model.Address
	nextID    uint
}

func (s *fakeAddressStore) List(ctx context.Context, params listview.RequestParams) ([]model.Address, int64, error) {
	var rows []model.Address
	for id := uint(1); id <= s.nextID; id++ {
		if a, ok := s.addresses[id]; ok {
			rows = append(rows, *a)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *fakeAddressStore) GetByID(ctx context.Context, id uint) (*model.Address, error) {
	a, ok := s.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAddressStore) Create(ctx context.Context, address *model.Address) error {
	if s.addresses == nil {
		s.addresses = make(map[uint]*model.Address)
	}
	s.nextID++
	address.ID = s.nextID
	cp := *address
	s.addresses[address.ID] = &cp
	return nil
}

func (s *fakeAddressStore) Updates(ctx context.Context, id uint, updates map[string]interface{}) error {
	a, ok := s.addresses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["city"].(string); ok {
		a.City = v
	}
	if v, ok := updates["phone"].(string); ok {
		a.Phone = v
	}
	return nil
}

func (s *fakeAddressStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.addresses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.addresses, id)
	return nil
}
