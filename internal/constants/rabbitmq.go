package constants

const (
	// LeadsExchange - обменник событий сайта, его слушает CRM агентства
	LeadsExchange = "site_events_exchange"
	// RoutingKeyLeadCreated - новая заявка с формы контактов или оценки
	RoutingKeyLeadCreated = "leads.created"
)
