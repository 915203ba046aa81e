package domain

// IntentLabel is one of a fixed closed set of tags summarizing what the
// user wants. Computed per message, never persisted as an entity.
type IntentLabel string

const (
	IntentDIYKit          IntentLabel = "diy_kit_inquiry"
	IntentPrice           IntentLabel = "price_inquiry"
	IntentProductDetails  IntentLabel = "product_details"
	IntentFranchise       IntentLabel = "franchise"
	IntentTechnicalHelp   IntentLabel = "technical_support"
	IntentSamples         IntentLabel = "samples"
	IntentFragrance       IntentLabel = "fragrance"
	IntentOrdering        IntentLabel = "ordering"
	IntentContact         IntentLabel = "contact"
	IntentWorkingHours    IntentLabel = "working_hours"
	IntentGreeting        IntentLabel = "greeting"
	IntentReadyProducts   IntentLabel = "ready_products"
	IntentRawMaterials    IntentLabel = "raw_materials"
	IntentBroom           IntentLabel = "broom_inquiry"
	IntentBrush           IntentLabel = "brush_inquiry"
	IntentMop             IntentLabel = "mop_inquiry"
	IntentWiper           IntentLabel = "wiper_inquiry"
	IntentCleaningTools   IntentLabel = "cleaning_tools_inquiry"
	IntentFloorCleaner    IntentLabel = "floor_cleaner_inquiry"
	IntentDishCleaner     IntentLabel = "dish_cleaner_inquiry"
	IntentToiletCleaner   IntentLabel = "toilet_cleaner_inquiry"
	IntentFabricCare      IntentLabel = "fabric_care_inquiry"
	IntentContainer       IntentLabel = "container_inquiry"
	IntentFAQTraining     IntentLabel = "faq_training"
	IntentFAQDelivery     IntentLabel = "faq_delivery"
	IntentFAQPayment      IntentLabel = "faq_payment"
	IntentFAQFormulation  IntentLabel = "faq_formulation"
	IntentFAQCustomize    IntentLabel = "faq_customization"
	IntentFAQSafety       IntentLabel = "faq_safety"
	IntentFAQCatalogue    IntentLabel = "faq_catalogue"
	IntentGeneral         IntentLabel = "general"
)
