package main

import (
	"context"
	"fmt"

	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/service"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

// seedFile is the YAML layout accepted by -seed.
type seedFile struct {
	Employees []struct {
		ID       int    `yaml:"emplid"`
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
		Password string `yaml:"password"`
	} `yaml:"employees"`
	Salaries []struct {
		EmployeeID           int    `yaml:"emplid"`
		Month                string `yaml:"month"`
		BasicSalary          int    `yaml:"basic_salary"`
		OvertimeAllowance    int    `yaml:"overtime_allowance"`
		HealthInsurance      int    `yaml:"health_insurance"`
		NursingCareInsurance int    `yaml:"nursing_care_insurance"`
		Pension              int    `yaml:"pension"`
		EmploymentInsurance  int    `yaml:"employment_insurance"`
		IncomeTax            int    `yaml:"income_tax"`
		ResidentTax          int    `yaml:"resident_tax"`
	} `yaml:"salaries"`
}

func loadSeed(ctx context.Context, path string, auth *service.AuthService, salaries *service.SalaryService, logger *zap.Logger) error {
	var seed seedFile
	if err := cleanenv.ReadConfig(path, &seed); err != nil {
		return fmt.Errorf("failed to read seed: %w", err)
	}

	for _, e := range seed.Employees {
		if err := auth.RegisterEmployee(ctx, e.ID, e.Name, e.Role, e.Password); err != nil {
			return fmt.Errorf("employee %d: %w", e.ID, err)
		}
	}
	for _, s := range seed.Salaries {
		pay := models.Salary{
			BasicSalary:          s.BasicSalary,
			OvertimeAllowance:    s.OvertimeAllowance,
			HealthInsurance:      s.HealthInsurance,
			NursingCareInsurance: s.NursingCareInsurance,
			Pension:              s.Pension,
			EmploymentInsurance:  s.EmploymentInsurance,
			IncomeTax:            s.IncomeTax,
			ResidentTax:          s.ResidentTax,
		}
		if err := salaries.Record(ctx, s.EmployeeID, s.Month, pay); err != nil {
			return fmt.Errorf("salary %d/%s: %w", s.EmployeeID, s.Month, err)
		}
	}

	logger.Info("Seed loaded",
		zap.Int("employees", len(seed.Employees)),
		zap.Int("salaries", len(seed.Salaries)),
	)
	return nil
}
