package service

import (
	"errors"

	"github.com/loftchat/loftchat-backend/internal/models"
	"github.com/loftchat/loftchat-backend/internal/repository"
	"gorm.io/gorm"
)

// CategoryService owns the per-user sidebar grouping. Referential integrity
// of Member.category_id is enforced here, not by the store: deleting a
// category cascades a reset over the members that referenced it.
type CategoryService struct {
	categoryRepo repository.CategoryRepositoryInterface
	memberRepo   repository.MemberRepositoryInterface
}

func NewCategoryService(categoryRepo repository.CategoryRepositoryInterface, memberRepo repository.MemberRepositoryInterface) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		memberRepo:   memberRepo,
	}
}

// Create appends a category after the user's current maximum rank (0 for the
// first one). Ranks are sparse comparison keys; gaps never close up.
func (s *CategoryService) Create(userID uint, title string) (*models.Category, error) {
	if title == "" {
		return nil, ErrInvalidInput
	}

	rank, err := s.categoryRepo.NextRank(userID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Title:  title,
		Rank:   rank,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListByUser(userID uint) ([]models.Category, error) {
	return s.categoryRepo.ListByUser(userID)
}

func (s *CategoryService) Rename(userID, categoryID uint, title string) (*models.Category, error) {
	if title == "" {
		return nil, ErrInvalidInput
	}

	category, err := s.ownedCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.UpdateTitle(category.ID, title); err != nil {
		return nil, err
	}
	category.Title = title
	return category, nil
}

// SetRank overwrites the category's rank directly: no sibling shifting,
// concurrent re-ranks are last-write-wins, ties sort by category id.
func (s *CategoryService) SetRank(userID, categoryID uint, rank int) error {
	category, err := s.ownedCategory(userID, categoryID)
	if err != nil {
		return err
	}
	return s.categoryRepo.UpdateRank(category.ID, rank)
}

// Delete removes the category and resets every member that referenced it back
// to the default bucket. The two writes are not transactional across
// documents; the cascade is idempotent and safe to retry.
func (s *CategoryService) Delete(userID, categoryID uint) error {
	if _, err := s.ownedCategory(userID, categoryID); err != nil {
		return err
	}
	if _, err := s.memberRepo.ClearCategory(categoryID); err != nil {
		return err
	}
	return s.categoryRepo.Delete(categoryID)
}

// ReassignMember moves a single membership into a category, or back to the
// default bucket when categoryID is nil. The "dm"/"group" sentinel buckets
// are normalized to nil before this point.
func (s *CategoryService) ReassignMember(userID, roomID uint, categoryID *uint) error {
	member, err := s.memberRepo.FindByRoomAndUser(roomID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if categoryID != nil {
		if _, err := s.ownedCategory(userID, *categoryID); err != nil {
			return err
		}
	}

	return s.memberRepo.SetCategory(member.ID, categoryID)
}

func (s *CategoryService) ownedCategory(userID, categoryID uint) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, ErrForbidden
	}
	return category, nil
}
