package pricing

import "github.com/ohm-hive/orders-api/models"

// ServiceInfo describes a service for the order form
type ServiceInfo struct {
	Type        models.ServiceType `json:"type"`
	LabelEN     string             `json:"label_en"`
	LabelAR     string             `json:"label_ar"`
	PricingEN   string             `json:"pricing_en"`
	PricingAR   string             `json:"pricing_ar"`
	FixedPrice  bool               `json:"fixed_price"` // total known without engineer review
	AcceptFiles bool               `json:"accept_files"`
}

var catalog = []ServiceInfo{
	{
		Type: models.ServiceCourseProject, LabelEN: "Course Project", LabelAR: "مشروع مقرر",
		PricingEN: "Base cost set by engineer. Report +700 SAR, presentation +250 SAR",
		PricingAR: "التكلفة الأساسية يحددها المهندس. التقرير +700 ريال، العرض التقديمي +250 ريال",
	},
	{
		Type: models.ServiceSeniorProject, LabelEN: "Senior Project", LabelAR: "مشروع تخرج",
		PricingEN: "Base cost set by engineer. Report +1200 SAR, presentation +400 SAR",
		PricingAR: "التكلفة الأساسية يحددها المهندس. التقرير +1200 ريال، العرض التقديمي +400 ريال",
	},
	{
		Type: models.ServiceConsulting, LabelEN: "Consulting", LabelAR: "استشارات",
		PricingEN: "80 SAR per hour", PricingAR: "80 ريال لكل ساعة",
		FixedPrice: true,
	},
	{
		Type: models.ServiceSupervision, LabelEN: "Senior Project Follow-up", LabelAR: "متابعة مشاريع التخرج",
		PricingEN: "1800 to 6500 SAR for 1 to 8 months", PricingAR: "من 1800 إلى 6500 ريال لمدة 1 إلى 8 أشهر",
		FixedPrice: true,
	},
	{
		Type: models.Service3DModeling, LabelEN: "3D Modeling", LabelAR: "تصميم ثلاثي الأبعاد",
		PricingEN: "50 SAR per hour (hours set by engineer)", PricingAR: "50 ريال لكل ساعة (يحدد المهندس عدد الساعات)",
	},
	{
		Type: models.Service3DPrinting, LabelEN: "3D Printing", LabelAR: "طباعة ثلاثية الأبعاد",
		PricingEN: "3 SAR per gram (weight set by engineer)", PricingAR: "3 ريال لكل جرام (يحدد المهندس الوزن)",
		AcceptFiles: true,
	},
	{
		Type: models.ServiceHomework, LabelEN: "Homework for Courses", LabelAR: "واجبات المقررات",
		PricingEN: "Set by engineer", PricingAR: "يحددها المهندس",
		AcceptFiles: true,
	},
}

// Catalog returns every service in form order
func Catalog() []ServiceInfo {
	out := make([]ServiceInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Label returns the display name of a service type in lang
func Label(st models.ServiceType, lang string) string {
	for _, info := range catalog {
		if info.Type == st {
			if lang == "ar" {
				return info.LabelAR
			}
			return info.LabelEN
		}
	}
	return string(st)
}
