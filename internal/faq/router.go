package faq

import (
	"strings"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
)

// subcategoryRules maps general-question buckets to trigger keywords.
// Keywords are stored pre-normalized.
var subcategoryRules = map[string][]string{
	"support": {
		"تواصل", "رقم", "هاتف", "خدمه العملاء", "شكوي", "بلاغ", "اقتراح",
		"دعم", "مساعده", "مفقود", "ضايع", "لقيت", "نسيت", "lost", "found",
		"التطبيق ما يشتغل", "ما يشتغل", "تعليق",
	},
	"prices": {
		"سعر", "اسعار", "كم ريال", "ريال", "رسوم", "تكلفه", "تذكره", "تذاكر",
		"اشتراك", "بطاقه", "دفع", "سداد", "مدي", "ابل باي", "فيزا",
		"شحن", "رصيد", "خصم", "مجاني", "طلاب",
	},
	"hours": {
		"متي", "وقت", "الساعه", "يفتح", "يقفل", "دوام", "ساعات",
		"اول", "اخر", "بدايه", "نهايه",
		"الجمعه", "الويكند", "كل كم", "تردد", "كم دقيقه", "انتظار",
		"كم يستغرق", "مده", "رحله", "قطار",
	},
	"stations": {
		"محطه", "محطات", "اقرب محطه", "وين محطه",
		"خط", "خطوط", "مسار", "المسار",
		"من", "الي", "تحويل", "تبديل", "انتقال", "اتجاه", "وجهه",
		"خريطه", "map",
	},
	"rules": {
		"مسموح", "ممنوع", "سياسه", "قانون",
		"اكل", "شرب", "تدخين", "تصوير", "كاميرا",
		"حيوانات", "اطفال", "عربه", "امتعه", "شنط", "حقيبه",
		"تفتيش", "امن",
	},
	"services": {
		"ذوي الاعاقه", "احتياجات", "مصعد", "سلم كهربايي",
		"كرسي متحرك", "منحدر", "مواقف", "باركنق",
		"حمام", "دورات مياه", "واي فاي", "شحن جوال",
	},
}

// subcategoryPriority orders the buckets; the first hit wins, so the
// ambiguous keywords late in the list never shadow support or pricing
// questions.
var subcategoryPriority = []string{"support", "prices", "hours", "stations", "rules", "services"}

// DetectSubcategory buckets a general question by keyword, returning
// "other" when nothing triggers.
func DetectSubcategory(question string) string {
	q := catalog.Normalize(question)
	for _, cat := range subcategoryPriority {
		for _, kw := range subcategoryRules[cat] {
			if strings.Contains(q, kw) {
				return cat
			}
		}
	}
	return "other"
}
