package directory

import "manoscerca.app/internal/models"

// SampleProviders returns the records seeded into an empty directory.
// They carry no ids; the store assigns them on insertion.
func SampleProviders() []models.Provider {
	return []models.Provider{
		{
			Name:        "María González",
			Email:       "maria.gonzalez@email.com",
			Phone:       "+34 612 345 678",
			Category:    models.CategoryCarpentry,
			Description: "Carpintera con 10 años de experiencia. Reparo muebles, hago muebles a medida y arreglo sillas.",
			Lat:         40.4158,
			Lng:         -3.7038,
		},
		{
			Name:        "Carlos Rodríguez",
			Email:       "carlos.rodriguez@email.com",
			Phone:       "+34 623 456 789",
			Category:    models.CategoryPlumbing,
			Description: "Gasfitero profesional. Reparación de tuberías, instalación de grifería y solución de problemas de fontanería.",
			Lat:         40.4178,
			Lng:         -3.7058,
		},
		{
			Name:        "Ana López",
			Email:       "ana.lopez@email.com",
			Phone:       "+34 634 567 890",
			Category:    models.CategoryElectrical,
			Description: "Electricista certificada. Instalaciones eléctricas, reparación de enchufes y solución de problemas de cortocircuitos.",
			Lat:         40.4198,
			Lng:         -3.7078,
		},
		{
			Name:        "Javier Martínez",
			Email:       "javier.martinez@email.com",
			Phone:       "+34 645 678 901",
			Category:    models.CategoryGardening,
			Description: "Servicios de jardinería y paisajismo. Podas, diseño de jardines y mantenimiento de áreas verdes.",
			Lat:         40.4218,
			Lng:         -3.7098,
		},
	}
}
