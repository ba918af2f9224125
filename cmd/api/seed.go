package main

import (
	"net/http"
	"time"

	"barhop/internal/store"
)

// Seed godoc
//
//	@Summary		Load demo venues and reviews
//	@Description	Writes a fixed demo dataset. Intended for fresh environments; existing records with the same ids are overwritten.
//	@Tags			Ops
//	@Produce		json
//	@Success		200	{object}	successEnvelope
//	@Failure		500	{object}	error
//	@Router			/seed [post]
func (app *application) seedHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	for i := range seedVenues {
		if err := app.store.Venues.Create(ctx, &seedVenues[i]); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	for i := range seedReviews {
		if err := app.store.Reviews.Create(ctx, &seedReviews[i]); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	// Derive the cached aggregates instead of trusting the fixture.
	for i := range seedVenues {
		if err := app.store.Ratings.Recompute(ctx, seedVenues[i].ID); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	app.logger.Infow("seed data loaded", "venues", len(seedVenues), "reviews", len(seedReviews))

	if err := writeJSON(w, http.StatusOK, successEnvelope{Success: true}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func seedTime(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

var seedVenues = []store.Venue{
	{
		ID: "1", Name: "Le Comptoir Moderne", Address: "15 Rue du Temple, 75004 Paris",
		Category: "Bar à cocktails", Latitude: 48.8566, Longitude: 2.3522,
		PhotoURL:       "https://images.unsplash.com/photo-1514933651103-005eec06c04b?w=800",
		HappyHourStart: "17:00", HappyHourEnd: "20:00",
		Prices:    store.Prices{Beer: 3.5, Cocktail: 6.0},
		CreatedAt: seedTime("2025-11-01"),
	},
	{
		ID: "2", Name: "Le Sunset Lounge", Address: "28 Avenue des Champs-Élysées, 75008 Paris",
		Category: "Lounge bar", Latitude: 48.8698, Longitude: 2.3078,
		PhotoURL:       "https://images.unsplash.com/photo-1543007630-9710e4a00a20?w=800",
		HappyHourStart: "18:00", HappyHourEnd: "21:00",
		Prices:    store.Prices{Beer: 4.0, Cocktail: 7.5},
		CreatedAt: seedTime("2025-11-01"),
	},
	{
		ID: "3", Name: "Chez Marcel", Address: "42 Rue de Rivoli, 75004 Paris",
		Category: "Bar traditionnel", Latitude: 48.8572, Longitude: 2.3556,
		PhotoURL:       "https://images.unsplash.com/photo-1566417713940-fe7c737a9ef2?w=800",
		HappyHourStart: "17:30", HappyHourEnd: "19:30",
		Prices:    store.Prices{Beer: 3.0, Cocktail: 5.5},
		CreatedAt: seedTime("2025-11-01"),
	},
	{
		ID: "4", Name: "The Irish Pub", Address: "8 Boulevard Saint-Germain, 75005 Paris",
		Category: "Pub irlandais", Latitude: 48.8530, Longitude: 2.3499,
		PhotoURL:       "https://images.unsplash.com/photo-1572116469696-31de0f17cc34?w=800",
		HappyHourStart: "16:00", HappyHourEnd: "19:00",
		Prices:    store.Prices{Beer: 3.5, Cocktail: 6.5},
		CreatedAt: seedTime("2025-11-01"),
	},
	{
		ID: "5", Name: "La Terrasse Parisienne", Address: "55 Rue de la Roquette, 75011 Paris",
		Category: "Bar branché", Latitude: 48.8553, Longitude: 2.3752,
		PhotoURL:       "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=800",
		HappyHourStart: "18:00", HappyHourEnd: "20:30",
		Prices:    store.Prices{Beer: 4.5, Cocktail: 8.0},
		CreatedAt: seedTime("2025-11-01"),
	},
	{
		ID: "6", Name: "Le Zinc", Address: "12 Rue Montorgueil, 75001 Paris",
		Category: "Bar de quartier", Latitude: 48.8634, Longitude: 2.3467,
		PhotoURL:       "https://images.unsplash.com/photo-1470337458703-46ad1756a187?w=800",
		HappyHourStart: "17:00", HappyHourEnd: "19:00",
		Prices:    store.Prices{Beer: 2.5, Cocktail: 5.0},
		CreatedAt: seedTime("2025-11-01"),
	},
}

var seedReviews = []store.Review{
	{ID: "r1", VenueID: "1", AuthorID: "demo1", AuthorDisplayName: "Marie Dubois", AuthorAvatarURL: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100", Rating: 5, Comment: "Ambiance géniale et prix imbattables pendant l'happy hour !", CreatedAt: seedTime("2025-11-15")},
	{ID: "r2", VenueID: "1", AuthorID: "demo2", AuthorDisplayName: "Thomas Martin", AuthorAvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100", Rating: 4, Comment: "Super rapport qualité/prix, les cocktails sont excellents.", CreatedAt: seedTime("2025-11-10")},
	{ID: "r3", VenueID: "2", AuthorID: "demo3", AuthorDisplayName: "Sophie Leroy", AuthorAvatarURL: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100", Rating: 4, Comment: "Belle terrasse, parfait pour l'apéro entre amis.", CreatedAt: seedTime("2025-11-12")},
	{ID: "r4", VenueID: "3", AuthorID: "demo4", AuthorDisplayName: "Pierre Durand", AuthorAvatarURL: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=100", Rating: 5, Comment: "Meilleur rapport qualité/prix du quartier ! Ambiance conviviale.", CreatedAt: seedTime("2025-11-18")},
	{ID: "r5", VenueID: "3", AuthorID: "demo5", AuthorDisplayName: "Julie Bernard", AuthorAvatarURL: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=100", Rating: 4, Comment: "Très bon accueil, prix corrects.", CreatedAt: seedTime("2025-11-16")},
	{ID: "r6", VenueID: "4", AuthorID: "demo6", AuthorDisplayName: "Lucas Petit", AuthorAvatarURL: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=100", Rating: 4, Comment: "Happy hour généreux, bonne ambiance pour regarder les matchs.", CreatedAt: seedTime("2025-11-14")},
	{ID: "r7", VenueID: "5", AuthorID: "demo7", AuthorDisplayName: "Emma Rousseau", AuthorAvatarURL: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=100", Rating: 5, Comment: "Terrasse magnifique, cocktails créatifs et happy hour top !", CreatedAt: seedTime("2025-11-17")},
	{ID: "r8", VenueID: "5", AuthorID: "demo8", AuthorDisplayName: "Alexandre Moreau", AuthorAvatarURL: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=100", Rating: 4, Comment: "Un peu cher mais la qualité est au rendez-vous.", CreatedAt: seedTime("2025-11-13")},
	{ID: "r9", VenueID: "6", AuthorID: "demo9", AuthorDisplayName: "Camille Dubois", AuthorAvatarURL: "https://images.unsplash.com/photo-1517841905240-472988babdf9?w=100", Rating: 5, Comment: "Le meilleur bar du coin ! Prix imbattables et serveurs sympas.", CreatedAt: seedTime("2025-11-19")},
}
