// README: Prompt assembly for the trip-request matching model.
package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
)

// Output markers mandated by the prompt. The parser owns the same constants;
// they live here because the prompt is where the contract is stated to the
// model.
const (
	markerComment = "[COMMENTAIRE]"
	markerTripID  = "[TRIP_ID]"
	markerMessage = "[MESSAGE]"
	noMatchToken  = "NONE"
)

// strategyBlock is the fixed instruction set. Tag strings and the distance
// bands are load-bearing: downstream parsing and the customer-facing tone
// both depend on them.
const strategyBlock = `STRATEGIE :
1. Si la demande semble incohérente ou ressemble à un test (villes identiques, texte absurde), ne propose AUCUN trajet.
2. Adapte la formulation des distances de prise en charge :
   - moins de 1.2 km : "à quelques minutes à pied"
   - de 1.2 à 3.5 km : "à proximité de votre point de départ"
   - de 3.5 à 8 km : "à une courte distance en taxi"
   - plus de 8 km : mentionne explicitement la distance en kilomètres
3. Le message client DOIT contenir un bloc d'adresse avec exactement ce gabarit :
   ─────────────────
   📍 Départ : <adresse>
   🏁 Arrivée : <adresse>
   🕑 Date : <date>
   ─────────────────
4. Écris la date en toutes lettres en français (exemple : "lundi 2 juin 2025").
5. Si le trajet est récurrent, mentionne la récurrence.
6. Termine le message client par un appel à l'action (réserver, répondre, confirmer).

FORMAT DE SORTIE OBLIGATOIRE :
[COMMENTAIRE]
<analyse interne pour l'équipe Klando>
[TRIP_ID]
<identifiant du trajet choisi, ou NONE si aucun ne convient>
[MESSAGE]
<message destiné au client>`

// BuildPrompt assembles the full prompt for one request and its ranked
// candidates. Pure and deterministic given identical inputs.
func BuildPrompt(r *request.TripRequest, candidates []Candidate) string {
	var b strings.Builder

	b.WriteString("Tu es l'assistant de mise en relation de Klando, une plateforme de covoiturage.\n")
	b.WriteString("Ta mission : choisir le meilleur trajet existant pour la demande ci-dessous, ou aucun.\n\n")

	b.WriteString("DEMANDE CLIENT :\n")
	fmt.Fprintf(&b, "- Départ : %s\n", r.OriginCity)
	fmt.Fprintf(&b, "- Arrivée : %s\n", r.DestinationCity)
	fmt.Fprintf(&b, "- Date souhaitée : %s\n\n", desiredDatePhrase(r.DesiredDate))

	b.WriteString("TRAJETS DISPONIBLES :\n")
	if len(candidates) == 0 {
		b.WriteString("AUCUN\n")
	}
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. [%s] %s -> %s | départ %s | %d place(s) | %s\n",
			i+1,
			c.Trip.ID,
			c.Trip.DepartureCity,
			c.Trip.ArrivalCity,
			FrenchLongDateTime(c.Trip.DepartureTime),
			c.Trip.SeatsAvailable,
			distancePhrase(c),
		)
	}
	b.WriteString("\n")

	b.WriteString(strategyBlock)
	return b.String()
}

func desiredDatePhrase(t *time.Time) string {
	if t == nil {
		return "dès que possible"
	}
	return FrenchLongDate(*t)
}

func distancePhrase(c Candidate) string {
	if c.OriginDistanceKm == nil || c.DestinationDistanceKm == nil {
		return "distances inconnues"
	}
	return fmt.Sprintf("distance départ %.1f km | distance arrivée %.1f km",
		*c.OriginDistanceKm, *c.DestinationDistanceKm)
}

var frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

// FrenchLongDate renders t as "lundi 2 juin 2025".
func FrenchLongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// FrenchLongDateTime renders t as "lundi 2 juin 2025 à 08:30".
func FrenchLongDateTime(t time.Time) string {
	return fmt.Sprintf("%s à %s", FrenchLongDate(t), t.Format("15:04"))
}
