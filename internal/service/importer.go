package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/parser"
	"github.com/casaverde/comanda/internal/queue"
	"github.com/casaverde/comanda/internal/repo"
	"github.com/casaverde/comanda/internal/store/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MenuImportService runs the asynchronous pipeline that turns a spreadsheet
// into the day's menu configuration: enqueue a task, parse on the worker,
// persist config and task status atomically.
type MenuImportService struct {
	taskRepo repo.ImportTaskRepository
	menuRepo repo.DailyMenuRepository
	parser   *parser.SheetParser
	broker   queue.Broker
	storage  *mongo.Storage
	logger   *zap.SugaredLogger
}

func NewMenuImportService(
	taskRepo repo.ImportTaskRepository,
	menuRepo repo.DailyMenuRepository,
	parser *parser.SheetParser,
	broker queue.Broker,
	storage *mongo.Storage,
	logger *zap.SugaredLogger,
) *MenuImportService {
	return &MenuImportService{
		taskRepo: taskRepo,
		menuRepo: menuRepo,
		parser:   parser,
		broker:   broker,
		storage:  storage,
		logger:   logger,
	}
}

func (s *MenuImportService) CreateImportTask(ctx context.Context, spreadsheetID, menuDate string) (primitive.ObjectID, error) {
	task := &domain.ImportTask{
		Status:        domain.ImportQueued,
		SpreadsheetID: spreadsheetID,
		MenuDate:      menuDate,
		RetryCount:    0,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create import task: %w", err)
	}

	message := domain.MenuImportMessage{
		TaskID:        task.ID.Hex(),
		SpreadsheetID: spreadsheetID,
		MenuDate:      menuDate,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuImport, messageBytes); err != nil {
		_ = s.taskRepo.UpdateStatus(ctx, task.ID, domain.ImportFailed, err.Error())
		return primitive.NilObjectID, fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("menu import task created", "task_id", task.ID.Hex(), "spreadsheet_id", spreadsheetID, "menu_date", menuDate)

	return task.ID, nil
}

func (s *MenuImportService) GetTaskStatus(ctx context.Context, taskID primitive.ObjectID) (*domain.ImportTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get import task: %w", err)
	}

	return task, nil
}

func (s *MenuImportService) ProcessImportTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportProcessing, ""); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Infow("processing menu import", "task_id", taskID.Hex(), "menu_date", task.MenuDate)

	if s.parser == nil {
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "sheets parser not configured")
		return fmt.Errorf("sheets parser not configured")
	}

	config, err := s.parser.ParseDailyMenu(ctx, task.SpreadsheetID, task.MenuDate)
	if err != nil {
		s.logger.Errorw("failed to parse daily menu", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		return fmt.Errorf("failed to parse daily menu: %w", err)
	}

	// save the configuration and complete the task atomically
	session, err := s.storage.StartSession()
	if err != nil {
		s.logger.Errorw("failed to start session", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "failed to start transaction")
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	if err := session.StartTransaction(); err != nil {
		s.logger.Errorw("failed to start transaction", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "failed to start transaction")
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if err := s.menuRepo.Upsert(ctx, config); err != nil {
		s.logger.Errorw("failed to save daily menu config", "task_id", taskID.Hex(), "error", err)
		session.AbortTransaction(ctx)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		return fmt.Errorf("failed to save daily menu config: %w", err)
	}

	if err := s.taskRepo.UpdateWithConfigID(ctx, taskID, config.ID, domain.ImportCompleted); err != nil {
		s.logger.Errorw("failed to update task", "task_id", taskID.Hex(), "error", err)
		session.AbortTransaction(ctx)
		return fmt.Errorf("failed to update task: %w", err)
	}

	if err := session.CommitTransaction(ctx); err != nil {
		s.logger.Errorw("failed to commit transaction", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Infow("menu import completed", "task_id", taskID.Hex(), "config_id", config.ID.Hex(), "menu_date", task.MenuDate)

	return nil
}
