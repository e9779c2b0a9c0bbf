package services

import (
	"project/backend/models"

	"gorm.io/gorm"
)

// CategoryNode is a category with its resolved children. CourseCount is the
// number of published courses tagged directly with this category.
type CategoryNode struct {
	models.Category
	CourseCount int64           `json:"course_count"`
	Children    []*CategoryNode `json:"children"`
}

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

// BuildCategoryTree assembles the flat category rows into a forest. A node
// whose ParentID points at a missing row is treated as a root instead of
// failing; bad data must never take the catalog down.
func BuildCategoryTree(flat []models.Category) []*CategoryNode {
	nodes := make(map[uint]*CategoryNode, len(flat))
	for i := range flat {
		nodes[flat[i].ID] = &CategoryNode{Category: flat[i], Children: []*CategoryNode{}}
	}

	var roots []*CategoryNode
	for i := range flat {
		node := nodes[flat[i].ID]
		if flat[i].ParentID != nil {
			if parent, ok := nodes[*flat[i].ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Tree loads all categories, builds the forest and fills per-node counts of
// published courses.
func (cs *CategoryService) Tree() ([]*CategoryNode, error) {
	var categories []models.Category
	if err := cs.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	roots := BuildCategoryTree(categories)

	type countRow struct {
		CategoryID uint
		Count      int64
	}
	var counts []countRow
	if err := cs.DB.Model(&models.Course{}).
		Select("category_id, COUNT(*) as count").
		Where("status = ?", models.CourseStatusPublished).
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]int64, len(counts))
	for _, row := range counts {
		byID[row.CategoryID] = row.Count
	}
	var fill func(nodes []*CategoryNode)
	fill = func(nodes []*CategoryNode) {
		for _, node := range nodes {
			node.CourseCount = byID[node.ID]
			fill(node.Children)
		}
	}
	fill(roots)

	return roots, nil
}

// DescendantIDs returns categoryID plus the ids of every category below it.
// The walk tracks visited ids so a self-referential or cyclic parent edge in
// bad data cannot loop forever.
func (cs *CategoryService) DescendantIDs(categoryID uint) ([]uint, error) {
	var categories []models.Category
	if err := cs.DB.Find(&categories).Error; err != nil {
		return nil, err
	}

	children := make(map[uint][]uint, len(categories))
	for _, cat := range categories {
		if cat.ParentID != nil {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat.ID)
		}
	}

	visited := map[uint]bool{}
	queue := []uint{categoryID}
	var ids []uint
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		ids = append(ids, id)
		queue = append(queue, children[id]...)
	}
	return ids, nil
}

// CoursesInCategoryTree returns published courses tagged with the category or
// any of its descendants, paged the same way as the main listing.
func (cs *CategoryService) CoursesInCategoryTree(categoryID uint, page, pageSize int, sort []SortRule) ([]models.Course, int64, error) {
	ids, err := cs.DescendantIDs(categoryID)
	if err != nil {
		return nil, 0, err
	}

	query := cs.DB.Model(&models.Course{}).
		Where("status = ?", models.CourseStatusPublished).
		Where("category_id IN ?", ids)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range OrderClauses(sort) {
		query = query.Order(clause)
	}

	var courses []models.Course
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}
