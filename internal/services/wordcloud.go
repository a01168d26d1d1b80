package services

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"freedomwall/internal/db"
	"freedomwall/internal/models"
	"freedomwall/internal/utils"
)

const (
	wordCloudCacheKey = "wordcloud:top"
	wordCloudLimit    = 40
)

// WordCount 词云中的一个词条
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// 常见虚词不进词云
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "his": {}, "has": {}, "had": {}, "how": {},
	"its": {}, "this": {}, "that": {}, "with": {}, "have": {}, "from": {},
	"they": {}, "will": {}, "would": {}, "there": {}, "their": {}, "what": {},
	"about": {}, "which": {}, "when": {}, "just": {}, "like": {}, "some": {},
	"very": {}, "your": {}, "into": {}, "than": {}, "them": {}, "been": {},
}

// WordCloud 公开留言的词频统计，取前 limit 个词
// 结果挂在 word-cloud tag 下，留言写操作会让它失效
func WordCloud(limit int) ([]WordCount, error) {
	if limit < 1 || limit > wordCloudLimit {
		limit = wordCloudLimit
	}

	if cached := utils.GetCache().Get(wordCloudCacheKey); cached != nil {
		if words, ok := cached.([]WordCount); ok {
			if len(words) > limit {
				words = words[:limit]
			}
			return words, nil
		}
	}

	words, err := computeWordCloud()
	if err != nil {
		return nil, err
	}

	utils.GetCache().Set(wordCloudCacheKey, words, utils.DefaultCacheTTL, TagWordCloud)
	if len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

// computeWordCloud 全量扫描公开、未删除留言的标题和正文
func computeWordCloud() ([]WordCount, error) {
	var notes []models.Note
	err := db.DB.Select("title, content").
		Where("is_deleted = ? AND is_private = ?", false, false).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, n := range notes {
		for _, word := range tokenize(n.Title + " " + n.Content) {
			counts[word]++
		}
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if len(words) > wordCloudLimit {
		words = words[:wordCloudLimit]
	}
	return words, nil
}

// tokenize 按非字母数字切词，过滤短词和虚词；中文按单字处理意义不大，直接跳过单字
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var words []string
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, skip := stopWords[f]; skip {
			continue
		}
		words = append(words, f)
	}
	return words
}

// WordCloudService 异步重算词云的后台服务
// 留言写入会触发 ScheduleRefresh，worker 去重合并后重算并回填缓存，
// 避免写高峰时每个请求都全表扫描
type WordCloudService struct {
	queue   chan struct{}
	mu      sync.Mutex
	pending bool
}

var (
	wordCloudService *WordCloudService
	wordCloudOnce    sync.Once
)

// GetWordCloudService 获取单例词云服务
func GetWordCloudService() *WordCloudService {
	wordCloudOnce.Do(func() {
		wordCloudService = &WordCloudService{
			queue: make(chan struct{}, 16),
		}
		go wordCloudService.worker()
	})
	return wordCloudService
}

// ScheduleRefresh 请求一次异步重算（已排队则跳过）
func (s *WordCloudService) ScheduleRefresh() {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	select {
	case s.queue <- struct{}{}:
	default:
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}
}

// worker 合并短时间内的多次刷新请求，统一重算
func (s *WordCloudService) worker() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-s.queue:
			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false

			s.mu.Lock()
			s.pending = false
			s.mu.Unlock()

			words, err := computeWordCloud()
			if err != nil {
				log.Printf("词云重算失败: %v", err)
				continue
			}
			utils.GetCache().Set(wordCloudCacheKey, words, utils.DefaultCacheTTL, TagWordCloud)
		}
	}
}
