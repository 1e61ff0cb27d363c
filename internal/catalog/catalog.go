package catalog

import "applock/internal/model"

// The catalog is a fixed list of well-known apps used to populate the
// selector. It stands in for a real installed-app enumeration; nothing in
// the core ever mutates it.
var apps = []model.CatalogApp{
	{Name: "Facebook", PackageName: "com.facebook.katana", Icon: "📘"},
	{Name: "WhatsApp", PackageName: "com.whatsapp", Icon: "💬"},
	{Name: "Instagram", PackageName: "com.instagram.android", Icon: "📷"},
	{Name: "TikTok", PackageName: "com.zhiliaoapp.musically", Icon: "🎵"},
	{Name: "YouTube", PackageName: "com.google.android.youtube", Icon: "▶️"},
	{Name: "Twitter", PackageName: "com.twitter.android", Icon: "🐦"},
	{Name: "Snapchat", PackageName: "com.snapchat.android", Icon: "👻"},
	{Name: "Netflix", PackageName: "com.netflix.mediaclient", Icon: "🎬"},
	{Name: "Spotify", PackageName: "com.spotify.music", Icon: "🎶"},
	{Name: "Games", PackageName: "com.games.app", Icon: "🎮"},
	{Name: "Amazon", PackageName: "com.amazon.mShop.android.shopping", Icon: "📦"},
	{Name: "Google Maps", PackageName: "com.google.android.apps.maps", Icon: "🗺️"},
	{Name: "Gmail", PackageName: "com.google.android.gm", Icon: "📧"},
	{Name: "Chrome", PackageName: "com.android.chrome", Icon: "🌐"},
	{Name: "Discord", PackageName: "com.discord", Icon: "💬"},
	{Name: "Telegram", PackageName: "org.telegram.messenger", Icon: "📤"},
	{Name: "Pinterest", PackageName: "com.pinterest", Icon: "📌"},
	{Name: "Reddit", PackageName: "com.reddit.frontpage", Icon: "🤖"},
	{Name: "Uber", PackageName: "com.ubercab", Icon: "🚗"},
	{Name: "Banking", PackageName: "com.banking.app", Icon: "🏦"},
}

// Apps returns a copy so callers can't mutate the catalog.
func Apps() []model.CatalogApp {
	out := make([]model.CatalogApp, len(apps))
	copy(out, apps)
	return out
}

func Find(packageName string) (model.CatalogApp, bool) {
	for _, a := range apps {
		if a.PackageName == packageName {
			return a, true
		}
	}
	return model.CatalogApp{}, false
}
