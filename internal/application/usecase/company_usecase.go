package usecase

import (
	"context"

	"github.com/jhoicas/team-feedback/internal/application/dto"
	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
)

// CompanyUseCase lectura de la empresa del principal. La empresa se crea solo en el registro.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Current devuelve la empresa a la que pertenece el principal.
func (uc *CompanyUseCase) Current(ctx context.Context, actor entity.Principal) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
