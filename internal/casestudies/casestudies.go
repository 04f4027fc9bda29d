// Package casestudies serves the fixed library of past trip records. The
// data is bundled seed content; nothing here is user-mutable.
package casestudies

import (
	"strings"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

var seed = []domain.CaseStudy{
	{
		ID:        "1",
		Title:     "베트남 다낭 초등학교 영어 교육 프로그램",
		Country:   "베트남",
		Year:      2023,
		TargetAge: "초등학생 (8-12세)",
		Theme:     "영어 교육",
		Summary:   "베트남 다낭 지역 초등학교에서 영어 회화 및 문화 교류 프로그램을 진행했습니다.",
		Highlights: []string{
			"게임 기반 영어 학습으로 참여도 95% 달성",
			"한국 문화 소개 (K-POP, 한글) 세션 인기",
			"현지 교사와 협력하여 지속가능한 커리큘럼 개발",
		},
		Lessons: []string{
			"언어 장벽: 시각 자료와 제스처 활용이 효과적",
			"문화적 차이: 사전 조사와 현지 조언이 중요",
			"날씨 대응: 실내/실외 활동 모두 준비 필요",
		},
	},
	{
		ID:        "2",
		Title:     "캄보디아 시엠립 IT 교육 봉사",
		Country:   "캄보디아",
		Year:      2023,
		TargetAge: "중학생 (13-15세)",
		Theme:     "IT/코딩 교육",
		Summary:   "캄보디아 시엠립의 중학교에서 기초 컴퓨터 활용 및 코딩 교육을 실시했습니다.",
		Highlights: []string{
			"Scratch를 활용한 블록 코딩 교육",
			"학생들이 직접 만든 게임 작품 전시회 개최",
			"컴퓨터 기초 활용 능력 향상 (설문조사 80% 개선)",
		},
		Lessons: []string{
			"인프라 제약: 오프라인 학습 자료 필수",
			"수준 차이: 단계별 난이도 구성 필요",
			"지속성: 현지 교사 교육이 핵심",
		},
	},
	{
		ID:        "3",
		Title:     "필리핀 세부 보건 교육 프로그램",
		Country:   "필리핀",
		Year:      2024,
		TargetAge: "초등학생 (6-10세)",
		Theme:     "보건/위생 교육",
		Summary:   "필리핀 세부 지역 초등학교에서 기본 위생 및 건강 관리 교육을 진행했습니다.",
		Highlights: []string{
			"손씻기, 양치질 등 기본 위생 습관 교육",
			"영양 교육 및 건강한 식습관 안내",
			"응급처치 기본 교육 실시",
		},
		Lessons: []string{
			"실습 중심: 이론보다 직접 체험이 효과적",
			"물품 준비: 위생용품 충분한 수량 확보",
			"언어: 간단한 현지어 학습이 도움됨",
		},
	},
	{
		ID:        "4",
		Title:     "몽골 울란바토르 예체능 교육",
		Country:   "몽골",
		Year:      2024,
		TargetAge: "초중등학생 (10-14세)",
		Theme:     "예술/체육",
		Summary:   "몽골 울란바토르의 학교에서 미술, 음악, 체육 활동을 통한 정서 교육을 실시했습니다.",
		Highlights: []string{
			"전통 악기와 현대 음악 융합 수업",
			"한국 전통 놀이 소개 (윷놀이, 제기차기)",
			"공동 작품 제작을 통한 협동심 강화",
		},
		Lessons: []string{
			"날씨: 극한의 추위 대비 필수",
			"문화 교류: 상호 문화 존중이 중요",
			"준비물: 예술 재료 충분히 준비",
		},
	},
}

// All returns every case study in library order.
func All() []domain.CaseStudy {
	out := make([]domain.CaseStudy, len(seed))
	copy(out, seed)
	return out
}

// Search filters by case-insensitive substring match over title, country,
// and theme. An empty query returns everything.
func Search(query string) []domain.CaseStudy {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}

	out := make([]domain.CaseStudy, 0, len(seed))
	for _, cs := range seed {
		if strings.Contains(strings.ToLower(cs.Title), q) ||
			strings.Contains(strings.ToLower(cs.Country), q) ||
			strings.Contains(strings.ToLower(cs.Theme), q) {
			out = append(out, cs)
		}
	}
	return out
}
