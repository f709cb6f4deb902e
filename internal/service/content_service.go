package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"manassa_backend/internal/config"
	"manassa_backend/internal/model"
	"manassa_backend/internal/repository"
	"manassa_backend/internal/util"
	"manassa_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentChapter  ContentType = "chapter"
	ContentQuiz     ContentType = "quiz"
	ContentHomework ContentType = "homework"
)

// CourseContentItem is one entry in a course's mixed content list:
// a chapter, quiz, or homework sharing the {id, title, position, type}
// shape with type-specific extras.
type CourseContentItem struct {
	ID       uint        `json:"id"`
	Title    string      `json:"title"`
	Position int         `json:"position"`
	Type     ContentType `json:"type"`

	// Chapter fields
	VideoDuration *float64 `json:"videoDuration,omitempty"`
	IsFree        *bool    `json:"isFree,omitempty"`
	IsCompleted   *bool    `json:"isCompleted,omitempty"`

	// Assessment fields
	QuestionCount  *int     `json:"questionCount,omitempty"`
	MaxAttempts    *int     `json:"maxAttempts,omitempty"`
	TimeLimit      *int     `json:"timeLimit,omitempty"`
	Attempts       *int     `json:"attempts,omitempty"`
	BestPercentage *float64 `json:"bestPercentage,omitempty"`
}

type ContentService struct {
	CourseRepo     *repository.CourseRepository
	ChapterRepo    *repository.ChapterRepository
	AssessmentRepo *repository.AssessmentRepository
	ResultRepo     *repository.ResultRepository
	PurchaseRepo   *repository.PurchaseRepository
	Storage        *StorageService
	Cfg            *config.Config
	Redis          *redis.Client
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	chapterRepo *repository.ChapterRepository,
	assessmentRepo *repository.AssessmentRepository,
	resultRepo *repository.ResultRepository,
	purchaseRepo *repository.PurchaseRepository,
	storage *StorageService,
	cfg *config.Config,
	rdb *redis.Client,
) *ContentService {
	return &ContentService{
		CourseRepo:     courseRepo,
		ChapterRepo:    chapterRepo,
		AssessmentRepo: assessmentRepo,
		ResultRepo:     resultRepo,
		PurchaseRepo:   purchaseRepo,
		Storage:        storage,
		Cfg:            cfg,
		Redis:          rdb,
	}
}

const (
	courseContentKeyPrefix  = "course_content:"
	courseContentTTL        = 5 * time.Minute
	uploadProgressKeyPrefix = "upload_progress:"
	uploadProgressTTL       = time.Hour
)

// GetCourseContent returns the course's published chapters, quizzes, and
// homeworks as one list ordered by position. The viewer's own progress
// and result summaries are attached when claims are present.
func (s *ContentService) GetCourseContent(ctx context.Context, courseID uint, viewer *util.Claims) ([]CourseContentItem, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	privileged := viewer != nil && (viewer.Role == model.Teacher || viewer.Role == model.Admin)
	if !course.IsPublished && !privileged {
		return nil, util.ErrCourseNotFound
	}

	items, err := s.publishedContent(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if viewer != nil && viewer.Role == model.Student {
		if err := s.attachViewerData(items, viewer.UserID); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// publishedContent builds (or reads from cache) the viewer-independent
// content list.
func (s *ContentService) publishedContent(ctx context.Context, courseID uint) ([]CourseContentItem, error) {
	cacheKey := fmt.Sprintf("%s%d", courseContentKeyPrefix, courseID)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var items []CourseContentItem
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	chapters, err := s.ChapterRepo.ListPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.AssessmentRepo.ListPublishedByCourse(courseID, model.KindQuiz)
	if err != nil {
		return nil, err
	}
	homeworks, err := s.AssessmentRepo.ListPublishedByCourse(courseID, model.KindHomework)
	if err != nil {
		return nil, err
	}

	assessmentIDs := make([]uint, 0, len(quizzes)+len(homeworks))
	for _, a := range quizzes {
		assessmentIDs = append(assessmentIDs, a.ID)
	}
	for _, a := range homeworks {
		assessmentIDs = append(assessmentIDs, a.ID)
	}
	questionCounts, err := s.AssessmentRepo.QuestionCountMap(assessmentIDs)
	if err != nil {
		return nil, err
	}

	chapterItems := make([]CourseContentItem, len(chapters))
	for i, ch := range chapters {
		duration := ch.VideoDuration
		isFree := ch.IsFree
		chapterItems[i] = CourseContentItem{
			ID:            ch.ID,
			Title:         ch.Title,
			Position:      ch.Position,
			Type:          ContentChapter,
			VideoDuration: &duration,
			IsFree:        &isFree,
		}
	}

	items := MergeByPosition(
		chapterItems,
		assessmentItems(quizzes, ContentQuiz, questionCounts),
		assessmentItems(homeworks, ContentHomework, questionCounts),
	)

	if s.Redis != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, raw, courseContentTTL).Err(); err != nil {
				logger.Log.Warn("course content cache write failed", zap.Error(err))
			}
		}
	}

	return items, nil
}

func assessmentItems(assessments []model.Assessment, contentType ContentType, questionCounts map[uint]int) []CourseContentItem {
	items := make([]CourseContentItem, len(assessments))
	for i, a := range assessments {
		count := questionCounts[a.ID]
		maxAttempts := a.MaxAttempts
		timeLimit := a.TimeLimit
		items[i] = CourseContentItem{
			ID:            a.ID,
			Title:         a.Title,
			Position:      a.Position,
			Type:          contentType,
			QuestionCount: &count,
			MaxAttempts:   &maxAttempts,
			TimeLimit:     &timeLimit,
		}
	}
	return items
}

// MergeByPosition merges pre-sorted lists into one list ordered by
// position. The merge is stable: on equal positions, items keep the
// order of the argument lists, so display order is deterministic even
// when an author reuses a position across content types.
func MergeByPosition(lists ...[]CourseContentItem) []CourseContentItem {
	total := 0
	for _, list := range lists {
		total += len(list)
	}

	merged := make([]CourseContentItem, 0, total)
	heads := make([]int, len(lists))

	for len(merged) < total {
		best := -1
		for i, list := range lists {
			if heads[i] >= len(list) {
				continue
			}
			if best == -1 || list[heads[i]].Position < lists[best][heads[best]].Position {
				best = i
			}
		}
		merged = append(merged, lists[best][heads[best]])
		heads[best]++
	}

	return merged
}

func (s *ContentService) attachViewerData(items []CourseContentItem, userID uint) error {
	var chapterIDs, assessmentIDs []uint
	for _, item := range items {
		if item.Type == ContentChapter {
			chapterIDs = append(chapterIDs, item.ID)
		} else {
			assessmentIDs = append(assessmentIDs, item.ID)
		}
	}

	progress, err := s.ChapterRepo.ProgressMap(userID, chapterIDs)
	if err != nil {
		return err
	}
	stats, err := s.ResultRepo.StatsByUser(userID, assessmentIDs)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].Type == ContentChapter {
			completed := progress[items[i].ID]
			items[i].IsCompleted = &completed
			continue
		}
		stat := stats[items[i].ID]
		attempts := stat.Attempts
		best := stat.BestPercentage
		items[i].Attempts = &attempts
		items[i].BestPercentage = &best
	}
	return nil
}

// InvalidateCourseContent drops the cached content list after an
// authoring mutation.
func (s *ContentService) InvalidateCourseContent(courseID uint) {
	if s.Redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("%s%d", courseContentKeyPrefix, courseID)
	if err := s.Redis.Del(context.Background(), cacheKey).Err(); err != nil {
		logger.Log.Warn("course content cache invalidation failed", zap.Error(err))
	}
}

// MarkChapterProgress records completion for the viewer. Paid chapters
// require a purchase; free chapters are open to any student.
func (s *ContentService) MarkChapterProgress(claims *util.Claims, chapterID uint, completed bool) error {
	chapter, err := s.ChapterRepo.FindByID(chapterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrChapterNotFound
	}
	if err != nil {
		return err
	}
	if !chapter.IsPublished {
		return util.ErrChapterNotFound
	}

	if !chapter.IsFree && claims.Role == model.Student {
		purchased, err := s.PurchaseRepo.HasPurchase(claims.UserID, chapter.CourseID)
		if err != nil {
			return err
		}
		if !purchased {
			return util.ErrNoPurchase
		}
	}

	return s.ChapterRepo.UpsertProgress(claims.UserID, chapterID, completed)
}

type ChapterReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	IsFree      *bool   `json:"isFree"`
}

func (s *ContentService) CreateChapter(courseID uint, req ChapterReq) (*model.Chapter, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	chapter := &model.Chapter{
		CourseID: courseID,
		Title:    *req.Title,
	}
	if req.Description != nil {
		chapter.Description = *req.Description
	}
	if req.Position != nil {
		chapter.Position = *req.Position
	}
	if req.IsFree != nil {
		chapter.IsFree = *req.IsFree
	}

	if err := s.ChapterRepo.Create(chapter); err != nil {
		return nil, err
	}
	s.InvalidateCourseContent(courseID)
	return chapter, nil
}

func (s *ContentService) UpdateChapter(chapterID uint, req ChapterReq) (*model.Chapter, error) {
	chapter, err := s.findChapter(chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		chapter.Title = *req.Title
	}
	if req.Description != nil {
		chapter.Description = *req.Description
	}
	if req.Position != nil {
		chapter.Position = *req.Position
	}
	if req.IsFree != nil {
		chapter.IsFree = *req.IsFree
	}

	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	s.InvalidateCourseContent(chapter.CourseID)
	return chapter, nil
}

func (s *ContentService) SetChapterPublished(chapterID uint, published bool) error {
	chapter, err := s.findChapter(chapterID)
	if err != nil {
		return err
	}
	if err := s.ChapterRepo.SetPublished(chapterID, published); err != nil {
		return err
	}
	s.InvalidateCourseContent(chapter.CourseID)
	return nil
}

func (s *ContentService) DeleteChapter(chapterID uint) error {
	chapter, err := s.findChapter(chapterID)
	if err != nil {
		return err
	}
	if err := s.ChapterRepo.Delete(chapterID); err != nil {
		return err
	}
	s.InvalidateCourseContent(chapter.CourseID)
	return nil
}

func (s *ContentService) GetChapter(claims *util.Claims, chapterID uint) (*model.Chapter, error) {
	chapter, err := s.findChapter(chapterID)
	if err != nil {
		return nil, err
	}

	privileged := claims != nil && (claims.Role == model.Teacher || claims.Role == model.Admin)
	if !chapter.IsPublished && !privileged {
		return nil, util.ErrChapterNotFound
	}

	if claims != nil && claims.Role == model.Student && !chapter.IsFree {
		purchased, err := s.PurchaseRepo.HasPurchase(claims.UserID, chapter.CourseID)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, util.ErrNoPurchase
		}
	}

	return chapter, nil
}

func (s *ContentService) findChapter(chapterID uint) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindByID(chapterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChapterNotFound
	}
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// UploadChapterVideo stores the video, probes its duration, grabs a
// thumbnail, and updates the chapter. Progress is tracked in redis for
// polling while the copy streams.
func (s *ContentService) UploadChapterVideo(ctx context.Context, chapterID uint, uploadID string, file *multipart.FileHeader) (*model.Chapter, error) {
	chapter, err := s.findChapter(chapterID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !util.HasAllowedExtension(ext, util.AllowedVideoExtensions) {
		return nil, util.ErrInvalidVideoExt
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return nil, util.ErrInvalidVideoExt
	}
	resetReader(src)

	// Stage locally so ffprobe can read the file
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	tempPath := filepath.Join(tempDir, fmt.Sprintf("chapter_video_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(tempPath)

	out, err := os.Create(tempPath)
	if err != nil {
		return nil, err
	}

	reader := s.newProgressReader(ctx, src, file.Size, uploadID)
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		return nil, err
	}
	out.Close()

	info, err := util.GetVideoInfo(tempPath)
	if err != nil {
		logger.Log.Warn("video probe failed", zap.Uint("chapterID", chapterID), zap.Error(err))
		info = &util.VideoInfo{}
	}

	filename := fmt.Sprintf("videos/%d/%s_%s%s", chapter.CourseID,
		time.Now().Format("20060102150405"), util.GenerateRandomString(6), ext)
	url, err := s.Storage.UploadFile(ctx, filename, tempPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	thumbPath := tempPath + ".jpg"
	if err := util.GenerateThumbnail(tempPath, thumbPath, "00:00:01"); err == nil {
		defer os.Remove(thumbPath)
		thumbName := strings.TrimSuffix(filename, ext) + ".jpg"
		if thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err == nil {
			chapter.ThumbnailURL = thumbURL
		}
	}

	chapter.VideoURL = url
	chapter.VideoDuration = info.Duration
	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}

	s.setUploadProgress(ctx, uploadID, 100)
	s.InvalidateCourseContent(chapter.CourseID)
	return chapter, nil
}

// UploadQuestionImage stores an image for use on a question and returns
// its URL. The URL is attached at authoring time, not here.
func (s *ContentService) UploadQuestionImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !util.HasAllowedExtension(ext, util.AllowedImageExtensions) {
		return "", util.ErrInvalidImageExt
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", util.ErrInvalidImageExt
	}
	resetReader(src)

	filename := "questions/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext
	return s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
}

// GetUploadProgress returns percent complete for a streaming upload.
func (s *ContentService) GetUploadProgress(ctx context.Context, uploadID string) (int, error) {
	if s.Redis == nil {
		return 0, nil
	}
	progress, err := s.Redis.Get(ctx, uploadProgressKeyPrefix+uploadID).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return progress, err
}

func (s *ContentService) setUploadProgress(ctx context.Context, uploadID string, percent int) {
	if s.Redis == nil || uploadID == "" {
		return
	}
	s.Redis.Set(ctx, uploadProgressKeyPrefix+uploadID, percent, uploadProgressTTL)
}
