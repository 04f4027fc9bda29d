package service

import (
	"fmt"
	"strings"

	"github.com/pas-volunteer/planner-backend/internal/planner/domain"
)

// chatSystemPrompt defines the assistant's persona and operating principles
// for conversational planning turns.
const chatSystemPrompt = `당신은 PAS(태평양아시아협회) 해외교육봉사 전문 AI 어시스턴트입니다.

당신의 역할:
- 대학생 봉사단이 해외교육봉사 프로그램을 기획하고 설계하는 것을 돕습니다
- 봉사 대상국의 문화, 교육 환경, 필요사항을 분석합니다
- 연령대별 맞춤 교육 프로그램과 활동을 제안합니다
- 안전, 문화적 고려사항, 준비물 등을 안내합니다

기본 원칙:
1. 항상 친절하고 격려하는 태도로 응답합니다
2. 구체적이고 실행 가능한 조언을 제공합니다
3. 안전과 문화 존중을 최우선으로 고려합니다
4. 질문을 통해 팀의 생각을 이끌어냅니다
5. 과거 성공 사례를 참고하여 조언합니다

프로그램 설계 시 고려사항:
- 대상 국가/지역의 문화적 특성
- 대상 연령대의 발달 단계와 관심사
- 교육 주제와 목표
- 현지 인프라 및 자원
- 안전 및 위험 관리
- 지속가능성과 현지 협력

항상 한국어로 응답하며, 필요시 영어 표현도 함께 제공합니다.`

// documentTitles maps each document type to its fixed display title.
var documentTitles = map[string]string{
	domain.DocProposal:    "프로젝트 기획서",
	domain.DocChecklist:   "준비물 체크리스트",
	domain.DocCurriculum:  "교육 커리큘럼",
	domain.DocSafetyGuide: "안전 가이드",
}

// DocumentTitle returns the fixed title for a known document type.
func DocumentTitle(docType string) (string, bool) {
	title, ok := documentTitles[docType]
	return title, ok
}

// flattenHistory renders the full chat history as role-prefixed lines for
// interpolation into document prompts.
func flattenHistory(history []domain.ChatMessage) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// buildDocumentPrompt produces the type-specific generation prompt. Unknown
// types return ok=false and no completion request is issued for them.
func buildDocumentPrompt(docType string, p *domain.Project) (string, bool) {
	switch docType {
	case domain.DocProposal:
		return fmt.Sprintf(`다음 정보를 바탕으로 해외교육봉사 기획서를 작성해주세요:

프로젝트 정보:
- 프로젝트명: %s
- 대상 국가: %s
- 대상 연령: %s
- 교육 주제: %s

대화 내역을 참고하여 다음 항목을 포함한 상세한 기획서를 작성해주세요:
1. 프로젝트 개요
2. 목표 및 기대효과
3. 대상 분석
4. 프로그램 구성 (일정별 상세 활동)
5. 필요 자원 및 예산
6. 안전 관리 계획
7. 평가 계획

대화 내역:
%s

형식: 마크다운으로 작성`, p.Name, p.Country, p.TargetAge, p.Theme, flattenHistory(p.ChatHistory)), true

	case domain.DocChecklist:
		return fmt.Sprintf(`%s %s 대상 %s 교육봉사를 위한 체크리스트를 작성해주세요.

다음 카테고리별로 구체적인 항목을 작성해주세요:
1. 출국 전 준비사항
2. 교육 자료 및 준비물
3. 안전 및 보건 관련
4. 문화적 고려사항
5. 현지 도착 후 확인사항

각 항목은 체크박스 형식으로 작성하고, 중요도와 함께 표시해주세요.
형식: 마크다운으로 작성`, p.Country, p.TargetAge, p.Theme), true

	case domain.DocCurriculum:
		return fmt.Sprintf(`%s %s 대상 %s 주제의 교육 커리큘럼을 작성해주세요.

다음을 포함해주세요:
1. 전체 프로그램 일정 (일차별)
2. 각 세션별 학습 목표
3. 활동 내용 및 방법
4. 필요 자료 및 준비물
5. 평가 방법
6. 주의사항

실제 현장에서 바로 활용 가능한 구체적인 커리큘럼을 작성해주세요.
형식: 마크다운으로 작성`, p.Country, p.TargetAge, p.Theme), true

	case domain.DocSafetyGuide:
		return fmt.Sprintf(`%s에서 %s 대상 교육봉사를 진행할 때의 안전 가이드를 작성해주세요.

다음을 포함해주세요:
1. 현지 안전 상황 및 주의사항
2. 건강 관련 (예방접종, 약품, 응급처치)
3. 문화적 금기사항
4. 비상 연락처 및 대응 절차
5. 자연재해 대비
6. 팀원 안전 관리 규칙

구체적이고 실용적인 가이드를 작성해주세요.
형식: 마크다운으로 작성`, p.Country, p.TargetAge), true
	}

	return "", false
}
