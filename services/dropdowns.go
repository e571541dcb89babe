package services

// ChannelOptions lists the selectable channel counts for a system.
var ChannelOptions = []int{4, 8, 16, 32}

// ResolutionOptions lists the camera resolutions offered in the catalog.
var ResolutionOptions = []string{
	"2MP",
	"4MP",
	"5MP",
	"8MP (4K)",
}

// CableTypeOptions lists the cable variants sold per metre or per roll.
var CableTypeOptions = []string{
	"3+1 Coaxial",
	"Cat6",
	"Cat6 Outdoor",
	"Power Cable",
}

// UnitTypeOptions lists the line-item unit types.
var UnitTypeOptions = []UnitType{UnitPiece, UnitMeter}

// QuotationStatusOptions lists the quotation lifecycle states.
var QuotationStatusOptions = []string{"draft", "sent", "accepted", "rejected"}

// KitStatusOptions lists the kit lifecycle states.
var KitStatusOptions = []string{"draft", "active", "archived"}
