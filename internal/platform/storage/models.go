package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBProduct(product *models.Product) *pgmodels.Product {
	return &pgmodels.Product{
		ID:             int32(product.ID),
		Sku:            product.ExternalID,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		RegularPrice:   int32(product.RegularPrice),
		SalePrice:      int32(product.SalePrice),
		CategoryID:     int32(product.CategoryID),
		Status:         string(product.Status),
		Featured:       product.Featured,
		Stock:          int32(product.Stock),
		BlessingTemple: product.BlessingTemple,
		BlessingMaster: product.BlessingMaster,
	}
}

func fromDBProduct(product *pgmodels.Product) models.Product {
	return models.Product{
		ID:             int(product.ID),
		ExternalID:     product.Sku,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		RegularPrice:   int(product.RegularPrice),
		SalePrice:      int(product.SalePrice),
		CategoryID:     int(product.CategoryID),
		Status:         models.ProductStatus(product.Status),
		Featured:       product.Featured,
		Stock:          int(product.Stock),
		BlessingTemple: product.BlessingTemple,
		BlessingMaster: product.BlessingMaster,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func toDBProductImage(image *models.ProductImage) *pgmodels.ProductImage {
	return &pgmodels.ProductImage{
		ProductID:    int32(image.ProductID),
		URL:          image.URL,
		FileKey:      image.FileKey,
		AltText:      image.AltText,
		DisplayOrder: int32(image.DisplayOrder),
		IsPrimary:    image.IsPrimary,
	}
}

func fromDBProductImage(image *pgmodels.ProductImage) models.ProductImage {
	return models.ProductImage{
		ID:           int(image.ID),
		ProductID:    int(image.ProductID),
		URL:          image.URL,
		FileKey:      image.FileKey,
		AltText:      image.AltText,
		DisplayOrder: int(image.DisplayOrder),
		IsPrimary:    image.IsPrimary,
		CreatedAt:    image.CreatedAt,
	}
}

func fromDBCategory(category *pgmodels.Category) models.Category {
	var parentID *int
	if category.ParentID != nil {
		parentID = lo.ToPtr(int(*category.ParentID))
	}

	return models.Category{
		ID:           int(category.ID),
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		ParentID:     parentID,
		DisplayOrder: int(category.DisplayOrder),
		CreatedAt:    category.CreatedAt,
	}
}

func toDBReview(review *models.Review) *pgmodels.Review {
	return &pgmodels.Review{
		ProductID:  int32(review.ProductID),
		UserName:   review.UserName,
		Rating:     int32(review.Rating),
		Comment:    review.Comment,
		Location:   review.Location,
		Language:   review.Language,
		IsVerified: review.Verified,
		IsApproved: review.Approved,
		CreatedAt:  review.CreatedAt,
	}
}

func fromDBReview(review *pgmodels.Review) models.Review {
	return models.Review{
		ID:        int(review.ID),
		ProductID: int(review.ProductID),
		UserName:  review.UserName,
		Rating:    int(review.Rating),
		Comment:   review.Comment,
		Location:  review.Location,
		Language:  review.Language,
		Verified:  review.IsVerified,
		Approved:  review.IsApproved,
		CreatedAt: review.CreatedAt,
	}
}

func toDBImportTask(task *models.ImportTask) (*pgmodels.ImportTask, error) {
	dbTask := &pgmodels.ImportTask{
		ID:        task.ID,
		Status:    string(task.Status),
		Progress:  int32(task.Progress),
		Message:   task.Message,
		CreatedAt: task.CreatedAt,
	}

	if task.Result != nil {
		result, err := json.Marshal(task.Result)
		if err != nil {
			return nil, fmt.Errorf("can't encode task result: %w", err)
		}
		dbTask.Result = lo.ToPtr(string(result))
	}

	return dbTask, nil
}

func fromDBImportTask(task *pgmodels.ImportTask, logs []pgmodels.ImportTaskLog) (*models.ImportTask, error) {
	result := &models.ImportTask{
		ID:        task.ID,
		Status:    models.TaskStatus(task.Status),
		Progress:  int(task.Progress),
		Message:   task.Message,
		CreatedAt: task.CreatedAt,
		Logs:      lo.Map(logs, func(log pgmodels.ImportTaskLog, _ int) string { return log.Line }),
	}

	if task.Result != nil {
		var importResult models.ImportResult
		if err := json.Unmarshal([]byte(*task.Result), &importResult); err != nil {
			return nil, fmt.Errorf("can't decode task result: %w", err)
		}
		result.Result = &importResult
	}

	return result, nil
}
