package domain

// Location is one of the named campus locations a complaint can reference.
type Location string

const (
	LocationUniversityBuilding   Location = "UNIVERSITY_BUILDING"
	LocationTechPark1            Location = "TECHPARK_1"
	LocationTechPark2            Location = "TECHPARK_2"
	LocationPaariHostel          Location = "PAARI_HOSTEL"
	LocationKaariHostel          Location = "KAARI_HOSTEL"
	LocationOoriHostel           Location = "OORI_HOSTEL"
	LocationAdhiyamanHostel      Location = "ADHIYAMAN_HOSTEL"
	LocationNelsonMandelaHostel  Location = "NELSON_MANDELA_HOSTEL"
	LocationAgasthiyarHostel     Location = "AGASTHIYAR_HOSTEL"
	LocationMullaiHostel         Location = "MULLAI_HOSTEL"
	LocationManoranjithamHostel  Location = "MANORANJITHAM_HOSTEL"
	LocationAvvaiyarHostel       Location = "AVVAIYAR_HOSTEL"
	LocationVendharSquare        Location = "VENDHAR_SQUARE"
	LocationJavaCanteen          Location = "JAVA_CANTEEN"
	LocationBellBlock            Location = "BELL_BLOCK"
	LocationMBABlock             Location = "MBA_BLOCK"
	LocationBiotechBlock         Location = "BIOTECH_BLOCK"
	LocationTPGanesanAuditorium  Location = "TP_GANESAN_AUDITORIUM"
)

var locationNames = map[Location]string{
	LocationUniversityBuilding:  "University Building",
	LocationTechPark1:           "Tech Park 1",
	LocationTechPark2:           "Tech Park 2",
	LocationPaariHostel:         "Hostel - Paari",
	LocationKaariHostel:         "Hostel - Kaari",
	LocationOoriHostel:          "Hostel - Oori",
	LocationAdhiyamanHostel:     "Hostel - Adhiyaman",
	LocationNelsonMandelaHostel: "Hostel - Nelson Mandela",
	LocationAgasthiyarHostel:    "Hostel - Agasthiyar",
	LocationMullaiHostel:        "Hostel - Mullai",
	LocationManoranjithamHostel: "Hostel - Manoranjitham",
	LocationAvvaiyarHostel:      "Hostel - Avvaiyar",
	LocationVendharSquare:       "Vendhar Square",
	LocationJavaCanteen:         "Java Canteen",
	LocationBellBlock:           "Bell Block",
	LocationMBABlock:            "MBA Block",
	LocationBiotechBlock:        "Bio Tech Block",
	LocationTPGanesanAuditorium: "TP Ganesan Auditorium",
}

// DisplayName returns the human-readable name shown to users.
func (l Location) DisplayName() string {
	if name, ok := locationNames[l]; ok {
		return name
	}
	return string(l)
}

// ValidLocation reports whether l is a member of the location set.
func ValidLocation(l Location) bool {
	_, ok := locationNames[l]
	return ok
}

// Locations lists every valid campus location.
func Locations() []Location {
	out := make([]Location, 0, len(locationNames))
	for l := range locationNames {
		out = append(out, l)
	}
	return out
}
