package employee

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strings"
	"time"

	"payroll-pro/internal/domain"
	employeeerrors "payroll-pro/internal/employee/errors"
	"payroll-pro/internal/events"
	"payroll-pro/internal/notification"
	"payroll-pro/internal/shared/contextutil"
	"payroll-pro/internal/shared/currency"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// OptionsCacheKey juga dihapus oleh modul user saat nama user berubah.
const OptionsCacheKey = "employees:options"

const optionsCacheTTL = 1 * time.Hour

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	AddFixedAllowance(ctx context.Context, id string, req AllowanceInput) (AllowanceResponse, error)
	RemoveFixedAllowance(ctx context.Context, id, allowanceID string) (AllowanceResponse, error)
}

type service struct {
	repo      Repository
	rdb       *redis.Client
	publisher EventPublisher
	notifier  notification.Sink
	sf        *singleflight.Group
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, rdb *redis.Client, publisher EventPublisher, notifier notification.Sink, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{
		repo:      repo,
		rdb:       rdb,
		publisher: publisher,
		notifier:  notifier,
		sf:        &singleflight.Group{},
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("position_id", req.PositionID),
		zap.String("email", req.Email),
	)

	startDate := req.StartDate
	if startDate == "" {
		startDate = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", startDate); err != nil {
		s.logger.Warn("create employee invalid start_date", zap.String("start_date", startDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidStartDate
	}

	status := domain.EmploymentActive
	if req.Status != "" {
		status = domain.EmploymentStatus(req.Status)
	}

	fullName := strings.TrimSpace(req.FullName)
	user := domain.User{
		ID:        "usr-" + uuid.NewString(),
		FullName:  fullName,
		Email:     strings.TrimSpace(req.Email),
		Role:      domain.RoleEmployee,
		AvatarURL: avatarURL(fullName),
	}
	emp := domain.Employee{
		ID:               "emp-" + uuid.NewString(),
		UserID:           user.ID,
		EmployeeIDNumber: strings.TrimSpace(req.EmployeeIDNumber),
		StartDate:        startDate,
		DepartmentID:     req.DepartmentID,
		PositionID:       req.PositionID,
		BaseSalary:       req.BaseSalary,
		Status:           status,
		FixedAllowances:  toAllowances(req.FixedAllowances),
	}

	if err := s.repo.Create(ctx, emp, user); err != nil {
		s.logger.Warn("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	event := events.EmployeeCreatedEvent{
		EventType:        "employee_created",
		EmployeeID:       emp.ID,
		EmployeeIDNumber: emp.EmployeeIDNumber,
		FullName:         user.FullName,
		OccurredAt:       s.now().UTC(),
	}
	if err := s.publisher.PublishEmployeeCreated(ctx, event); err != nil {
		// karyawan sudah tersimpan, event cukup dicatat
		s.logger.Error("publish employee created failed",
			zap.String("request_id", rid),
			zap.String("employee_id", emp.ID),
			zap.Error(err),
		)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID),
	)
	notification.Emit(ctx, s.notifier, "Karyawan baru berhasil ditambahkan.", notification.SeveritySuccess)

	return s.GetByID(ctx, emp.ID)
}

func (s *service) GetAll(ctx context.Context, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error) {
	views, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]EmployeeResponse, 0, len(views))
	for _, v := range views {
		if q != "" &&
			!strings.Contains(strings.ToLower(v.User.FullName), q) &&
			!strings.Contains(strings.ToLower(v.EmployeeIDNumber), q) {
			continue
		}
		if filter.DepartmentID != "" && v.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Status != "" && string(v.Status) != filter.Status {
			continue
		}
		out = append(out, EmployeeResponse{EmployeeView: v, BaseSalaryLabel: currency.FormatIDR(v.BaseSalary)})
	}
	return out, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		views, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeOption, 0, len(views))
		for _, e := range views {
			if e.Status == domain.EmploymentTerminated {
				continue
			}
			resp = append(resp, EmployeeOption{
				ID:               e.ID,
				FullName:         e.User.FullName,
				EmployeeIDNumber: e.EmployeeIDNumber,
				BaseSalary:       e.BaseSalary,
			})
		}
		sort.Slice(resp, func(i, j int) bool {
			return strings.ToLower(resp[i].FullName) < strings.ToLower(resp[j].FullName)
		})

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, jsonData, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return EmployeeResponse{EmployeeView: *v, BaseSalaryLabel: currency.FormatIDR(v.BaseSalary)}, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStartDate
	}

	var fixed []domain.AllowanceConfig
	if req.FixedAllowances != nil {
		fixed = toAllowances(*req.FixedAllowances)
	}

	err := s.repo.Update(ctx, id, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Email), func(emp domain.Employee) (domain.Employee, error) {
		emp.EmployeeIDNumber = strings.TrimSpace(req.EmployeeIDNumber)
		emp.StartDate = req.StartDate
		emp.DepartmentID = req.DepartmentID
		emp.PositionID = req.PositionID
		emp.BaseSalary = req.BaseSalary
		emp.Status = domain.EmploymentStatus(req.Status)
		if req.FixedAllowances != nil {
			emp.FixedAllowances = fixed
		}
		return emp, nil
	})
	if err != nil {
		s.logger.Warn("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	notification.Emit(ctx, s.notifier, "Data karyawan berhasil diperbarui.", notification.SeveritySuccess)

	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	notification.Emit(ctx, s.notifier, "Data karyawan telah dihapus.", notification.SeverityInfo)
	return nil
}

func (s *service) AddFixedAllowance(ctx context.Context, id string, req AllowanceInput) (AllowanceResponse, error) {
	added := toAllowances([]AllowanceInput{req})[0]
	list, err := s.repo.UpdateAllowances(ctx, id, func(cur []domain.AllowanceConfig) ([]domain.AllowanceConfig, error) {
		next := make([]domain.AllowanceConfig, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, added), nil
	})
	if err != nil {
		return AllowanceResponse{}, err
	}

	s.logger.Info("fixed allowance added", zap.String("employee_id", id), zap.String("allowance_id", added.ID))
	notification.Emit(ctx, s.notifier, "Tunjangan tetap berhasil ditambahkan.", notification.SeveritySuccess)
	return AllowanceResponse{EmployeeID: id, FixedAllowances: list}, nil
}

func (s *service) RemoveFixedAllowance(ctx context.Context, id, allowanceID string) (AllowanceResponse, error) {
	list, err := s.repo.UpdateAllowances(ctx, id, func(cur []domain.AllowanceConfig) ([]domain.AllowanceConfig, error) {
		next := make([]domain.AllowanceConfig, 0, len(cur))
		for _, fa := range cur {
			if fa.ID != allowanceID {
				next = append(next, fa)
			}
		}
		if len(next) == len(cur) {
			return nil, employeeerrors.ErrAllowanceNotFound
		}
		return next, nil
	})
	if err != nil {
		return AllowanceResponse{}, err
	}

	s.logger.Info("fixed allowance removed", zap.String("employee_id", id), zap.String("allowance_id", allowanceID))
	notification.Emit(ctx, s.notifier, "Tunjangan tetap telah dihapus.", notification.SeverityInfo)
	return AllowanceResponse{EmployeeID: id, FixedAllowances: list}, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func toAllowances(in []AllowanceInput) []domain.AllowanceConfig {
	out := make([]domain.AllowanceConfig, 0, len(in))
	for _, a := range in {
		isFixed := true
		if a.IsFixed != nil {
			isFixed = *a.IsFixed
		}
		out = append(out, domain.AllowanceConfig{
			ID:      "fa-" + uuid.NewString()[:8],
			Name:    strings.TrimSpace(a.Name),
			Amount:  a.Amount,
			IsFixed: isFixed,
		})
	}
	return out
}

func avatarURL(fullName string) string {
	name := strings.ReplaceAll(url.QueryEscape(fullName), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + name + "&background=random"
}
