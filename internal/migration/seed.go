package migration

import (
	"github.com/voin/voin-backend/internal/domain"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"gorm.io/gorm"
)

type keywordSeed struct {
	name        string
	description string
}

type coinSeed struct {
	name        string
	description string
	color       string
	keywords    []keywordSeed
}

var coinSeeds = []coinSeed{
	{
		name: "관리와 성장", description: "목표를 향해 꾸준히 나아가며 체계적으로 성장하는 가치", color: "#FF6B6B",
		keywords: []keywordSeed{
			{"끈기", "목표를 향해 포기하지 않고 꾸준히 나아가는 힘"},
			{"인내심", "어려움이나 불편함을 참고 견디는 태도"},
			{"성실함", "맡은 일에 꾸준히 최선을 다하는 태도"},
			{"절제력", "욕구나 충동을 이성적으로 통제하는 힘"},
			{"침착함", "감정이나 상황에 흔들리지 않고 차분히 대응하는 태도"},
			{"학습력", "새로운 지식이나 경험을 빠르게 이해하고 익히는 능력"},
			{"성찰력", "자신을 되돌아보고 의미를 찾는 내면적 사고 태도"},
			{"적응력", "새로운 변화에 빠르고 유연하게 적응하는 능력"},
			{"수용성", "피드백이나 의견을 열린 태도로 받아들이는 자세"},
		},
	},
	{
		name: "감정과 태도", description: "긍정적인 감정과 밝은 에너지로 주변을 환하게 만드는 가치", color: "#4ECDC4",
		keywords: []keywordSeed{
			{"유머 감각", "주변을 웃게 만드는 센스"},
			{"감수성", "섬세한 감정과 풍부한 감성으로 세상을 바라보는 능력"},
			{"표현력", "감정이나 생각을 솔직하고 풍부하게 표현하는 능력"},
			{"밝은 에너지", "주변까지 환하게 만드는 활기찬 에너지"},
			{"긍정성", "상황을 긍정적으로 받아들이는 태도"},
			{"열정", "무언가에 강한 의욕과 에너지를 갖고 임하는 태도"},
		},
	},
	{
		name: "창의와 몰입", description: "호기심과 창의력으로 새로운 것을 탐구하고 몰입하는 가치", color: "#45B7D1",
		keywords: []keywordSeed{
			{"호기심", "새로운 것에 관심을 갖고 반응하는 태도"},
			{"탐구력", "알고자 하는 대상을 깊게 연구하고 파고드는 태도"},
			{"창의력", "기존 틀을 넘어 새로운 아이디어를 떠올리는 능력"},
			{"집중력", "하나의 일에 주의를 모아 지속하는 태도"},
			{"몰입력", "하나의 일에 깊이 빠져 몰두하는 태도"},
			{"기획력", "아이디어를 구체적으로 구조화하는 능력"},
		},
	},
	{
		name: "사고와 해결", description: "논리적 사고와 통찰력으로 문제를 해결하는 가치", color: "#F7DC6F",
		keywords: []keywordSeed{
			{"판단력", "주어진 조건에서 가장 적절한 결정을 내리는 능력"},
			{"논리력", "생각의 근거를 정리하고, 조리 있게 전개하는 능력"},
			{"분석력", "자료나 현상을 논리적으로 파악하고 해석하는 능력"},
			{"통찰력", "본질을 꿰뚫어보고 전체를 이해하는 사고력"},
			{"신중성", "충동보다 깊은 사고로 판단하는 태도"},
			{"문제해결력", "문제를 분석하고 구조적으로 해결해나가는 능력"},
			{"융통성", "상황에 맞게 사고와 행동을 유연하게 조절하는 능력"},
		},
	},
	{
		name: "관계와 공감", description: "타인을 이해하고 배려하며 따뜻한 관계를 만드는 가치", color: "#BB8FCE",
		keywords: []keywordSeed{
			{"공감력", "타인의 감정을 이해하고 반응하는 능력"},
			{"배려심", "상대의 입장을 생각하고 배려하는 마음"},
			{"포용력", "다양성을 인정하고 수용하는 태도"},
			{"경청 태도", "진심으로 귀 기울여 듣는 자세"},
			{"친화력", "자연스럽게 어울리고 편안한 관계를 만드는 능력"},
			{"지지력", "타인을 흔들림 없이 믿고 응원하는 마음의 힘"},
			{"온화함", "따뜻한 태도로 주변 사람에게 안정감을 주는 성향"},
			{"중재력", "갈등을 균형 있게 조율하고 해결로 이끄는 능력"},
			{"조율력", "다양한 의견이나 입장을 균형 있게 조화시키는 능력"},
			{"겸손함", "자기를 과시하지 않고 타인을 존중하며 소통하는 태도"},
			{"예의 바름", "예절과 배려를 지키며 상대방을 존중하는 태도"},
		},
	},
	{
		name: "신념과 실행", description: "확고한 신념과 강한 실행력으로 목표를 달성하는 가치", color: "#F8C471",
		keywords: []keywordSeed{
			{"신념", "자신의 가치와 믿음을 지키는 태도"},
			{"주체성", "주변에 휘둘리지 않고, 스스로 판단하는 태도"},
			{"정직함", "사실을 왜곡하지 않고, 신뢰를 지키는 태도"},
			{"정의감", "옳고 그름에 민감히 반응하고, 불의에 맞서는 태도"},
			{"도덕심", "사회적으로 바른 가치 기준을 지키려는 마음가짐"},
			{"용기", "두려움을 이기고 행동으로 옮기는 힘"},
			{"결단력", "과감하게 결정을 내리고 실행으로 옮기는 힘"},
			{"주도성", "팀이나 상황을 이끌고 먼저 실행하는 힘"},
			{"실행력", "계획한 일을 실제로 옮겨서 실행해 나가는 추진력"},
			{"리더십", "사람들을 이끌고 방향을 제시하는 능력"},
			{"공정성", "편견 없이 균형 있게 판단하고 존중하는 태도"},
			{"책임감", "맡은 일이나 역할을 끝까지 해내려는 태도와 의지"},
			{"계획성", "목표 달성을 위해 체계적으로 준비하는 능력"},
			{"도전력", "새로운 가능성에 적극적으로 뛰어드는 태도"},
		},
	},
}

type formSeed struct {
	title       string
	description string
	formType    domain.FormType
	questions   []string
}

var formSeeds = []formSeed{
	{
		title: "오늘의 일기", description: "오늘 하루를 돌아보며 나의 장점을 발견해보세요", formType: domain.FormTypeTodayDiary,
		questions: []string{
			"오늘 가장 잘한 일은 무엇인가요?",
			"어떤 순간에 나의 장점이 드러났나요?",
			"오늘 느낀 긍정적인 감정은 무엇인가요?",
		},
	},
	{
		title: "경험 돌아보기", description: "과거의 경험을 통해 나의 강점을 찾아보세요", formType: domain.FormTypeExperienceReflection,
		questions: []string{
			"기억에 남는 성공 경험을 공유해주세요",
			"그 경험에서 어떤 강점을 발휘했나요?",
			"그 강점을 어떻게 더 발전시킬 수 있을까요?",
		},
	},
	{
		title: "친구의 장점 찾아주기", description: "친구의 장점을 발견하고 공유해주세요", formType: domain.FormTypeFriendStrength,
		questions: []string{
			"친구의 어떤 점이 가장 인상적인가요?",
			"친구가 가진 특별한 능력은 무엇인가요?",
			"친구에게 어떤 응원의 메시지를 전하고 싶나요?",
		},
	},
}

// SeedMasterData 코인/키워드/폼을 비어있을 때만 한 번 삽입한다
func SeedMasterData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Coin{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := seedCoins(db); err != nil {
			return err
		}
	}

	if err := db.Model(&domain.Form{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return seedForms(db)
	}
	return nil
}

func seedCoins(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		total := 0
		for _, cs := range coinSeeds {
			coin := domain.Coin{Name: cs.name, Description: cs.description, Color: cs.color}
			for _, ks := range cs.keywords {
				coin.Keywords = append(coin.Keywords, domain.Keyword{Name: ks.name, Description: ks.description})
			}
			if err := tx.Create(&coin).Error; err != nil {
				return err
			}
			total += len(coin.Keywords)
		}
		pkglogger.GetLogger().Info().
			Int("coins", len(coinSeeds)).
			Int("keywords", total).
			Msg("master data seeded")
		return nil
	})
}

func seedForms(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, fs := range formSeeds {
			form := domain.Form{Title: fs.title, Description: fs.description, Type: fs.formType}
			for i, q := range fs.questions {
				form.Questions = append(form.Questions, domain.Question{Content: q, OrderIndex: i + 1})
			}
			if err := tx.Create(&form).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
