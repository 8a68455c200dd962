package receipt

import "github.com/ohm-hive/orders-api/models"

// TermSection is one numbered block of the terms and conditions
type TermSection struct {
	Title   string
	Content string
}

// Translation holds every fixed string printed on a receipt
type Translation struct {
	Tagline        string
	Contact        string
	Receipt        string
	OrderNumber    string
	DateStatus     string
	CustomerInfo   string
	Name           string
	Phone          string
	Email          string
	ServiceDetails string
	ServiceType    string
	CostBreakdown  string
	Total          string
	TBD            string
	Signature      string
	Footer1        string
	Footer2        string
	TermsTitle     string
	Brand          string
	Components     map[string]string
	Statuses       map[models.OrderStatus]string
	Terms          []TermSection
}

var translations = map[string]Translation{
	"en": {
		Tagline:        "Where Ideas Buzz to Life",
		Contact:        "WhatsApp: 0536113736 | Engineering Services for Students",
		Receipt:        "ORDER RECEIPT",
		OrderNumber:    "ORDER NUMBER",
		DateStatus:     "DATE / STATUS",
		CustomerInfo:   "CUSTOMER INFORMATION",
		Name:           "Name:",
		Phone:          "Phone:",
		Email:          "Email:",
		ServiceDetails: "SERVICE DETAILS",
		ServiceType:    "Service Type:",
		CostBreakdown:  "COST BREAKDOWN",
		Total:          "TOTAL:",
		TBD:            "To be determined later by engineer",
		Signature:      "CUSTOMER SIGNATURE:",
		Footer1:        "This is an electronically generated receipt.",
		Footer2:        "Generated on: ",
		TermsTitle:     "TERMS AND CONDITIONS",
		Brand:          "OHM HIVE - Where Ideas Buzz to Life | WhatsApp: 0536113736",
		Components: map[string]string{
			models.CostBase:        "Base Cost",
			models.CostReport:      "Report",
			models.CostPPT:         "Presentation",
			models.CostConsulting:  "Consulting",
			models.CostSupervision: "Follow-up",
		},
		Statuses: map[models.OrderStatus]string{
			models.StatusPending:    "PENDING",
			models.StatusConfirmed:  "CONFIRMED",
			models.StatusInProgress: "IN PROGRESS",
			models.StatusCompleted:  "COMPLETED",
			models.StatusCancelled:  "CANCELLED",
		},
		Terms: []TermSection{
			{"1. Payment Terms", "Payment is divided into two installments: 50% before commencement of work, and 50% upon completion. Work shall commence only upon receipt of the first payment. Final deliverables shall be released only upon receipt of the second payment. All prices are final and non-negotiable."},
			{"2. Components and Materials", "The cost of electronic components and materials required for the project is not included in the service fee. The customer is responsible for either providing the components directly or paying for their procurement."},
			{"3. Delivery and Late Submission", "Our team commits to delivering work by the agreed deadline. In the event of late delivery, the customer shall be compensated 200 SAR for each day of delay."},
			{"4. Explanation Sessions", "Course Projects: One complimentary explanation session included. Senior Projects: Two meetings per month plus one preparation session before each presentation. Additional sessions: 100 SAR per session."},
			{"5. Adjustments", "The customer is entitled to request adjustments for reports and presentations free of charge once. Subsequent adjustment requests are charged at 50 SAR per hour."},
			{"6. Scope of Services", "Ohm Hive provides technical development and implementation services only. We do not provide project ideas, nor do we evaluate customer ideas. Ohm Hive is not responsible for the acceptance or rejection of the idea by any academic institution."},
			{"7. Consulting Services", "Consulting sessions are billed at 80 SAR per hour. Any time exceeding one hour shall be billed as a full additional hour."},
			{"8. Communication", "All communication shall be conducted via WhatsApp, email, or online meetings only. Professional and respectful communication is required from both parties."},
			{"9. Termination", "Failure to comply with these terms grants Ohm Hive the right to terminate the agreement immediately. The customer shall not be entitled to claim any refunds."},
		},
	},
	"ar": {
		Tagline:        "حيث تنبض الأفكار بالحياة",
		Contact:        "واتساب: 0536113736 | خدمات هندسية للطلاب",
		Receipt:        "إيصال الطلب",
		OrderNumber:    "رقم الطلب",
		DateStatus:     "التاريخ / الحالة",
		CustomerInfo:   "معلومات العميل",
		Name:           "الاسم:",
		Phone:          "الهاتف:",
		Email:          "البريد:",
		ServiceDetails: "تفاصيل الخدمة",
		ServiceType:    "نوع الخدمة:",
		CostBreakdown:  "تفاصيل التكلفة",
		Total:          "الإجمالي:",
		TBD:            "سيتم تحديدها لاحقاً",
		Signature:      "توقيع العميل:",
		Footer1:        "إيصال إلكتروني.",
		Footer2:        "تاريخ الإصدار: ",
		TermsTitle:     "الشروط والأحكام",
		Brand:          "OHM HIVE - حيث تنبض الأفكار بالحياة | واتساب: 0536113736",
		Components: map[string]string{
			models.CostBase:        "التكلفة الأساسية",
			models.CostReport:      "التقرير",
			models.CostPPT:         "العرض التقديمي",
			models.CostConsulting:  "الاستشارات",
			models.CostSupervision: "المتابعة",
		},
		Statuses: map[models.OrderStatus]string{
			models.StatusPending:    "قيد الانتظار",
			models.StatusConfirmed:  "مؤكد",
			models.StatusInProgress: "قيد التنفيذ",
			models.StatusCompleted:  "مكتمل",
			models.StatusCancelled:  "ملغي",
		},
		Terms: []TermSection{
			{"1. شروط الدفع", "يتم تقسيم الدفع إلى قسطين: 50% قبل بدء العمل و 50% عند الانتهاء. يبدأ العمل فقط عند استلام الدفعة الأولى. لا يتم تسليم المخرجات النهائية إلا بعد استلام الدفعة الثانية كاملة. التكلفة نهائية وغير قابلة للتفاوض."},
			{"2. المكونات والمواد", "تكلفة المكونات الإلكترونية والمواد المطلوبة للمشروع غير مشمولة في رسوم الخدمة. العميل مسؤول عن توفير المكونات مباشرة أو دفع تكلفة شرائها."},
			{"3. التسليم والتأخير", "يلتزم فريقنا بتسليم العمل في الموعد المتفق عليه. في حال تأخر تسليم العمل، يُعوَّض العميل بمبلغ 200 ريال عن كل يوم تأخير."},
			{"4. جلسات الشرح", "مشاريع المقررات: جلسة شرح مجانية واحدة. مشاريع التخرج: اجتماعَين شهريًا بالإضافة إلى جلسة تحضيرية قبل كل عرض. الجلسات الإضافية: 100 ريال لكل جلسة."},
			{"5. التعديلات", "يحق للعميل طلب إجراء التعديلات على التقارير والعروض التقديمية مجانًا لمرة واحدة. طلبات التعديل اللاحقة تُحتسب بمبلغ 50 ريال لكل ساعة."},
			{"6. نطاق الخدمات", "يقدم Ohm Hive خدمات التطوير والتنفيذ التقني فقط. نحن لا نقدم أفكار المشاريع ولا نقيّم أفكار العملاء. Ohm Hive غير مسؤول عن قبول أو رفض الفكرة من قبل أي مؤسسة أكاديمية."},
			{"7. خدمات الاستشارات", "تُحتسب جلسات الاستشارة بمبلغ 80 ريال لكل ساعة. أي مدة تتجاوز ساعة واحدة تُحتسب ساعة إضافية كاملة."},
			{"8. التواصل", "جميع الاتصالات تتم عبر واتساب أو البريد الإلكتروني أو الاجتماعات عبر الإنترنت فقط. يُشترط الالتزام بالتواصل المهني والمحترم من كلا الطرفين."},
			{"9. الإنهاء", "عدم الامتثال لهذه الشروط يخول Ohm Hive إنهاء الاتفاقية فورًا. لا يحق للعميل المطالبة باسترداد أي مبالغ مدفوعة."},
		},
	},
}

// Lang normalizes a requested language; anything unknown becomes "en"
func Lang(code string) string {
	if _, ok := translations[code]; ok {
		return code
	}
	return "en"
}

// For returns the translation for lang, falling back to English
func For(lang string) Translation {
	return translations[Lang(lang)]
}
