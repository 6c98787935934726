package location

// City is a manual-pin candidate served to the host UI.
type City struct {
	Name   string  `json:"name"`
	NameEn string  `json:"name_en"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// EgyptCities is the governorate catalog offered for manual pinning.
var EgyptCities = []City{
	{Name: "القاهرة", NameEn: "Cairo", Lat: 30.0444, Lng: 31.2357},
	{Name: "الإسكندرية", NameEn: "Alexandria", Lat: 31.2001, Lng: 29.9187},
	{Name: "الجيزة", NameEn: "Giza", Lat: 30.0131, Lng: 31.2089},
	{Name: "القليوبية", NameEn: "Qalyubia", Lat: 30.2927, Lng: 31.2323},
	{Name: "بورسعيد", NameEn: "Port Said", Lat: 31.2653, Lng: 32.3019},
	{Name: "السويس", NameEn: "Suez", Lat: 29.9668, Lng: 32.5498},
	{Name: "الأقصر", NameEn: "Luxor", Lat: 25.6872, Lng: 32.6396},
	{Name: "أسوان", NameEn: "Aswan", Lat: 24.0889, Lng: 32.8998},
	{Name: "أسيوط", NameEn: "Assiut", Lat: 27.1783, Lng: 31.1859},
	{Name: "البحيرة", NameEn: "Beheira", Lat: 31.0362, Lng: 30.4678},
	{Name: "بني سويف", NameEn: "Beni Suef", Lat: 29.0661, Lng: 31.0994},
	{Name: "الدقهلية", NameEn: "Dakahlia", Lat: 31.0415, Lng: 31.3785},
	{Name: "دمياط", NameEn: "Damietta", Lat: 31.4175, Lng: 31.8144},
	{Name: "الفيوم", NameEn: "Fayoum", Lat: 29.3084, Lng: 30.8428},
	{Name: "الغربية", NameEn: "Gharbia", Lat: 30.7917, Lng: 31.0000},
	{Name: "الإسماعيلية", NameEn: "Ismailia", Lat: 30.5965, Lng: 32.2715},
	{Name: "كفر الشيخ", NameEn: "Kafr El Sheikh", Lat: 31.1107, Lng: 30.9388},
	{Name: "مطروح", NameEn: "Matrouh", Lat: 31.3543, Lng: 27.2373},
	{Name: "المنيا", NameEn: "Minya", Lat: 28.1099, Lng: 30.7503},
	{Name: "المنوفية", NameEn: "Monufia", Lat: 30.5972, Lng: 30.9876},
	{Name: "الوادي الجديد", NameEn: "New Valley", Lat: 25.4400, Lng: 30.5500},
	{Name: "شمال سيناء", NameEn: "North Sinai", Lat: 31.0500, Lng: 33.7500},
	{Name: "قنا", NameEn: "Qena", Lat: 26.1551, Lng: 32.7160},
	{Name: "البحر الأحمر", NameEn: "Red Sea", Lat: 27.2579, Lng: 33.8116},
	{Name: "الشرقية", NameEn: "Sharkia", Lat: 30.7327, Lng: 31.7195},
	{Name: "سوهاج", NameEn: "Sohag", Lat: 26.5570, Lng: 31.6948},
	{Name: "جنوب سيناء", NameEn: "South Sinai", Lat: 29.5000, Lng: 33.5000},
}
