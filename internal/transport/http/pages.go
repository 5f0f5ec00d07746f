package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var mapPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Landmark Tracker</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
<style>
body { font-family: Arial, sans-serif; margin: 0; display: flex; height: 100vh; }
#map { flex: 3; }
aside { flex: 1; min-width: 280px; max-width: 360px; overflow-y: auto; padding: 16px; border-left: 1px solid #ddd; }
h1 { font-size: 18px; margin: 0 0 12px; }
input, select { width: 100%; padding: 8px; margin: 4px 0; box-sizing: border-box; border: 1px solid #ccc; border-radius: 4px; }
li { list-style: none; padding: 8px; margin: 6px 0; background: #f7f7f7; border-radius: 4px; }
ul { padding: 0; }
.category { font-size: 12px; color: #666; }
.route-line { stroke-dasharray: 5, 10; }
</style>
</head>
<body>
<div id="map"></div>
<aside>
  <h1>Landmarks</h1>
  <input id="search" type="text" placeholder="Search by name..." />
  <select id="category">
    <option value="all">All categories</option>
    <option value="historical">Historical</option>
    <option value="natural">Natural</option>
    <option value="cultural">Cultural</option>
    <option value="other">Other</option>
  </select>
  <ul id="landmarks"></ul>
</aside>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
const map = L.map('map').setView([41.0082, 28.9784], 12);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

// Marker cache keyed by landmark id; refresh() replaces it wholesale after
// every fetch instead of patching markers incrementally.
let markers = {};

function clearMarkers() {
  Object.values(markers).forEach(m => map.removeLayer(m));
  markers = {};
}

async function refresh() {
  const params = new URLSearchParams();
  const name = document.getElementById('search').value.trim();
  const category = document.getElementById('category').value;
  if (name) params.set('name', name);
  if (category !== 'all') params.set('category', category);

  const response = await fetch('/api/v1/landmarks?' + params.toString());
  if (!response.ok) return;
  const data = await response.json();

  clearMarkers();
  const list = document.getElementById('landmarks');
  list.innerHTML = '';
  data.landmarks.forEach(landmark => {
    const marker = L.marker([landmark.latitude, landmark.longitude])
      .bindPopup('<strong>' + landmark.name + '</strong><br/>' + landmark.category);
    marker.addTo(map);
    markers[landmark.id] = marker;

    const li = document.createElement('li');
    li.innerHTML = '<strong>' + landmark.name + '</strong> <span class="category">' + landmark.category + '</span>';
    li.onclick = () => {
      map.setView([landmark.latitude, landmark.longitude], 14);
      marker.openPopup();
    };
    list.appendChild(li);
  });
}

document.getElementById('search').addEventListener('change', refresh);
document.getElementById('category').addEventListener('change', refresh);
refresh();
</script>
</body>
</html>`

func RegisterPages(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, mapPageHTML)
	})
}
