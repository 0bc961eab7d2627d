package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(games []CatalogGame) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Elite Games</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Elite Games</span>
        <h1>Pick your game.</h1>
        <p>Choose a station, set up players or teams, and the scoreboard does the rest.</p>
      </header>

      <section class="catalog">
`)
		for _, game := range games {
			_, _ = io.WriteString(w, `        <article class="panel game-card">
          <h2>`+esc(game.Name)+`</h2>
          <p>`+esc(game.Description)+`</p>
          <p class="meta">`)
			if game.TeamsOnly {
				_, _ = io.WriteString(w, `Teams only &middot; up to `+itoa(game.MaxTeams)+` teams`)
			} else {
				_, _ = io.WriteString(w, `Up to `+itoa(game.MaxPlayers)+` players or `+itoa(game.MaxTeams)+` teams`)
			}
			_, _ = io.WriteString(w, `</p>
          <a class="primary" href="/setup/`+esc(game.ID)+`">Play</a>
        </article>
`)
		}
		_, _ = io.WriteString(w, `      </section>
    </main>

    <div class="admin-corner">
      <button id="adminReset" class="ghost">Admin Reset</button>
    </div>
    <script>
      document.getElementById("adminReset").addEventListener("click", async () => {
        const passphrase = prompt("Enter admin password");
        if (!passphrase) {
          return;
        }
        const res = await fetch("/api/admin/reset", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ passphrase })
        });
        if (res.ok) {
          window.location.href = "/";
        } else {
          alert("Reset failed.");
        }
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
